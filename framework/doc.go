// Package framework provides a browser end-to-end testing framework for a web
// application, built on Ginkgo and Selenium WebDriver.
//
// The framework starts browser sessions against a Selenium grid or a local
// chromedriver, runs specs in them, captures artifacts for failed specs and
// writes a run report.
//
// # Quick Start
//
// Create one framework per suite and declare containers through it:
//
//	var fw = framework.MustNew()
//
//	func TestE2E(t *testing.T) {
//	    RegisterFailHandler(Fail)
//	    RunSpecs(t, "E2E Suite")
//	}
//
//	var _ = AfterSuite(func() {
//	    Expect(fw.Close()).To(Succeed())
//	})
//
//	var _ = fw.DescribeWithSessionPerSpec("checkout", func(b *framework.Browser) {
//	    It("opens the basket", func(ctx SpecContext) {
//	        p := pages.NewAppPage(b.Page())
//	        Expect(p.Go(p.PageURL("basket"))).To(Succeed())
//	        Expect(p.WaitForLoaded(ctx)).To(Succeed())
//	    })
//	})
//
// # Sessions
//
// DescribeWithSessionPerSpec gives every spec a new browser.
// DescribeWithSharedSession runs the container Ordered with one browser for
// all of its specs; a failing spec does not stop the rest.
//
// Which browser is started follows the configuration: a Selenium grid when
// SELENIUM_HOST is set, otherwise a local chromedriver, headless when
// HEADLESS is set.
//
// # Failure Artifacts
//
// When a spec fails its page URL, source, screenshot, accessibility results
// and browser logs are written under OUTPUT_DIR before the browser is quit:
//
//	output/checkout/20240102-150405 - opens the basket.png
//
// # Report
//
// Close writes results.json, results.csv and index.html to output/report.
//
// # Package Structure
//
// The framework is organized into subpackages:
//
//   - a11y: Accessibility audit of the current page
//   - artifacts: Failure artifact capture
//   - concurrent: Concurrent execution helpers for parallel operations
//   - config: Centralized configuration with environment variable support
//   - datetime: Timestamp formats for URLs and file names
//   - driver: Browser session creation
//   - fixtures: Customer fixtures and unique email addresses
//   - logging: Console and rotating file logger
//   - page: Page-object base with waits and element helpers
//   - pages: Application page objects
//   - profile: Browser capability profiles
//   - registration: Customer registration API client
//   - report: Run results export
//   - retry: Retry logic with exponential backoff
//   - softfail: Skipping specs on known flaky failures
//   - wait: Polling engine
package framework
