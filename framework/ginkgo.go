package framework

import (
	"context"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/ginkgo/v2/types"
	"go.uber.org/zap"

	"github.com/redhat/browser-e2e-tests/test/framework/a11y"
	"github.com/redhat/browser-e2e-tests/test/framework/driver"
	"github.com/redhat/browser-e2e-tests/test/framework/page"
	"github.com/redhat/browser-e2e-tests/test/framework/softfail"
)

// Browser is the handle a Describe body uses to reach the spec's browser.
// Its accessors are only valid inside setup and subject nodes. In a shared
// session container BeforeAll nodes of the body see the container's context.
type Browser struct {
	fw *Framework
	tc *TestContext
}

// Context returns the lifecycle record of the running spec
func (b *Browser) Context() *TestContext {
	return b.tc
}

// Session returns the running spec's browser session
func (b *Browser) Session() *driver.Session {
	if b.tc == nil {
		return nil
	}
	return b.tc.Session
}

// Page returns a page-object base bound to the running spec's session
func (b *Browser) Page() *page.Base {
	return page.New(b.Session(), b.fw.config, page.WithLogger(b.fw.logger))
}

// CheckA11y audits the current page with the suite's accessibility settings
func (b *Browser) CheckA11y(ctx context.Context) (*a11y.Results, error) {
	return a11y.Check(ctx, b.Session(), b.fw.a11yOpts...)
}

// SoftFail runs fn and skips the spec instead of failing it on a payment
// error, or on any error against production
func (b *Browser) SoftFail(fn func() error) (bool, error) {
	return softfail.Guard(ginkgo.Skip, b.fw.config.IsProd, fn)
}

// DescribeWithSessionPerSpec declares a container whose specs each get a
// fresh browser. body registers the specs and may add its own setup nodes,
// which run after the session is started.
func (f *Framework) DescribeWithSessionPerSpec(text string, body func(b *Browser), args ...interface{}) bool {
	b := &Browser{fw: f}
	hooks := f.Hooks()

	container := func() {
		ginkgo.BeforeEach(func(ctx ginkgo.SpecContext) {
			tc := &TestContext{Titles: specTitles(), State: StatePending}
			b.tc = tc
			f.failOnHookError(hooks.Start(ctx, tc))
			ginkgo.DeferCleanup(func() {
				f.logHookError("teardown", hooks.Teardown(tc))
			})
		})

		ginkgo.AfterEach(func() {
			f.finish(hooks, b.tc)
		})

		body(b)
	}
	return ginkgo.Describe(text, append(args, container)...)
}

// DescribeWithSharedSession declares an ordered container whose specs share
// one browser, started before the first spec and quit after the last. A
// failing spec does not stop the ones after it.
func (f *Framework) DescribeWithSharedSession(text string, body func(b *Browser), args ...interface{}) bool {
	b := &Browser{fw: f}
	hooks := f.Hooks()
	shared := &TestContext{}

	container := func() {
		ginkgo.BeforeAll(func(ctx ginkgo.SpecContext) {
			*shared = TestContext{
				Titles: ginkgo.CurrentSpecReport().ContainerHierarchyTexts,
				State:  StatePending,
			}
			b.tc = shared
			f.failOnHookError(hooks.Start(ctx, shared))
			ginkgo.DeferCleanup(func() {
				f.logHookError("teardown", hooks.Teardown(shared))
			})
		})

		ginkgo.BeforeEach(func() {
			b.tc = &TestContext{
				Titles:    specTitles(),
				State:     StateRunning,
				Session:   shared.Session,
				StartedAt: hooks.now(),
			}
		})

		ginkgo.AfterEach(func() {
			f.finish(hooks, b.tc)
		})

		body(b)
	}
	args = append(args, ginkgo.Ordered, ginkgo.ContinueOnFailure, container)
	return ginkgo.Describe(text, args...)
}

// finish maps the Ginkgo outcome of the running spec onto Finish. A spec
// whose session never started is only recorded.
func (f *Framework) finish(hooks *Hooks, tc *TestContext) {
	state, failure := specOutcome()
	if tc == nil {
		return
	}
	if tc.Session == nil {
		tc.State, tc.Failure = state, failure
		hooks.record(tc)
		return
	}
	if err := hooks.Finish(tc, state, failure); err != nil {
		if IsConfiguration(err) {
			ginkgo.AbortSuite(err.Error())
		}
		f.logHookError("finish", err)
	}
}

func (f *Framework) failOnHookError(err error) {
	if err == nil {
		return
	}
	if IsConfiguration(err) {
		ginkgo.AbortSuite(err.Error())
	}
	ginkgo.Fail(err.Error())
}

func (f *Framework) logHookError(hook string, err error) {
	if err == nil {
		return
	}
	if IsConfiguration(err) {
		ginkgo.AbortSuite(err.Error())
	}
	f.logger.Warn("lifecycle hook failed", zap.String("hook", hook), zap.Error(err))
}

func specTitles() []string {
	r := ginkgo.CurrentSpecReport()
	titles := make([]string, 0, len(r.ContainerHierarchyTexts)+1)
	titles = append(titles, r.ContainerHierarchyTexts...)
	return append(titles, r.LeafNodeText)
}

func specOutcome() (State, string) {
	r := ginkgo.CurrentSpecReport()
	switch {
	case r.State.Is(types.SpecStateSkipped):
		return StateSkipped, ""
	case r.Failed():
		return StateFailed, r.FailureMessage()
	default:
		return StatePassed, ""
	}
}
