package softfail

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type skipRecorder struct {
	messages []string
}

func (s *skipRecorder) skip(message string, _ ...int) {
	s.messages = append(s.messages, message)
}

func TestGuard(t *testing.T) {
	declined := Payment(errors.New("card declined"))
	broken := errors.New("button missing")

	tests := []struct {
		name    string
		isProd  bool
		fnErr   error
		wantOK  bool
		wantErr error
		skipped bool
	}{
		{name: "success", fnErr: nil, wantOK: true},
		{name: "payment error skips", fnErr: declined, skipped: true},
		{name: "any error in prod skips", isProd: true, fnErr: broken, skipped: true},
		{name: "other error fails", fnErr: broken, wantErr: broken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &skipRecorder{}
			ok, err := Guard(rec.skip, tt.isProd, func() error { return tt.fnErr })

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			if tt.skipped {
				assert.Equal(t, []string{Reason}, rec.messages)
			} else {
				assert.Empty(t, rec.messages)
			}
		})
	}
}

func TestGuard_NoSkipFunction(t *testing.T) {
	called := false
	ok, err := Guard(nil, false, func() error { called = true; return nil })

	require.ErrorIs(t, err, ErrNoSkip)
	assert.False(t, ok)
	assert.False(t, called)
}

func TestPayment(t *testing.T) {
	cause := errors.New("3ds timeout")
	err := Payment(cause)
	assert.ErrorIs(t, err, ErrPayment)
	assert.ErrorIs(t, err, cause)
}
