package validator

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"cardeval/internal/domain"
	"cardeval/internal/evaluator/mocks"
	"cardeval/internal/evaluator/ports"
	"cardeval/pkg/platform/circuit"
	"cardeval/pkg/platform/sentinel"
)

type BreakerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	next    *mocks.MockFrequentFlyerValidator
	now     time.Time
	logs    bytes.Buffer
	breaker *Breaker
}

func TestBreakerSuite(t *testing.T) {
	suite.Run(t, new(BreakerSuite))
}

func (s *BreakerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.next = mocks.NewMockFrequentFlyerValidator(s.ctrl)
	s.now = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	s.logs.Reset()

	cb := circuit.New("ffn",
		circuit.WithFailureThreshold(2),
		circuit.WithSuccessThreshold(1),
		circuit.WithCooldown(time.Minute),
		circuit.WithClock(func() time.Time { return s.now }),
	)
	s.breaker = NewBreaker(s.next, cb, WithBreakerLogger(slog.New(slog.NewTextHandler(&s.logs, nil))))
}

func (s *BreakerSuite) TestPassesThroughWhileClosed() {
	s.next.EXPECT().IsValid(gomock.Any(), "FF-1").Return(true, nil)

	valid, err := s.breaker.IsValid(context.Background(), "FF-1")
	s.Require().NoError(err)
	s.True(valid)
	s.Equal(circuit.StateClosed, s.breaker.State())
}

func (s *BreakerSuite) TestOpensAndFailsFast() {
	ctx := context.Background()
	fault := errors.New("503 from loyalty service")
	s.next.EXPECT().IsValid(gomock.Any(), gomock.Any()).Return(false, fault).Times(2)

	for i := 0; i < 2; i++ {
		_, err := s.breaker.IsValid(ctx, "FF-1")
		s.ErrorIs(err, fault)
	}
	s.Equal(circuit.StateOpen, s.breaker.State())
	s.Contains(s.logs.String(), "circuit opened")

	// No call reaches the wrapped validator while open.
	valid, err := s.breaker.IsValid(ctx, "FF-1")
	s.False(valid)
	s.ErrorIs(err, sentinel.ErrUnavailable)
	s.Equal(ErrorUnavailable, GetCategory(err))
}

func (s *BreakerSuite) TestTrialAfterCooldownCloses() {
	ctx := context.Background()
	s.next.EXPECT().IsValid(gomock.Any(), gomock.Any()).Return(false, errors.New("down")).Times(2)
	s.breaker.IsValid(ctx, "FF-1")
	s.breaker.IsValid(ctx, "FF-1")
	s.Require().Equal(circuit.StateOpen, s.breaker.State())

	s.now = s.now.Add(time.Minute)
	s.next.EXPECT().IsValid(gomock.Any(), "FF-1").Return(true, nil)

	valid, err := s.breaker.IsValid(ctx, "FF-1")
	s.Require().NoError(err)
	s.True(valid)
	s.Equal(circuit.StateClosed, s.breaker.State())
	s.Contains(s.logs.String(), "circuit closed")
}

func (s *BreakerSuite) TestDelegatesMetadata() {
	info := ports.ServiceInformation{License: ports.License{Key: "OK"}}
	s.next.EXPECT().ServiceInformation().Return(info)
	s.next.EXPECT().SetValidationMode(domain.ValidationModeDetailed)
	s.next.EXPECT().ValidationMode().Return(domain.ValidationModeDetailed)
	s.next.EXPECT().OnLookupPerformed(gomock.Any())

	s.Equal(info, s.breaker.ServiceInformation())
	s.breaker.SetValidationMode(domain.ValidationModeDetailed)
	s.Equal(domain.ValidationModeDetailed, s.breaker.ValidationMode())
	s.breaker.OnLookupPerformed(func() {})
}

func (s *BreakerSuite) TestCancelledCallerDoesNotMoveCircuit() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The wrapped validator is never called for a caller that already gave up.
	for i := 0; i < 3; i++ {
		valid, err := s.breaker.IsValid(ctx, "FF-1")
		s.False(valid)
		s.ErrorIs(err, context.Canceled)
		s.Equal(ErrorTimeout, GetCategory(err))
	}
	s.Equal(circuit.StateClosed, s.breaker.State())

	s.next.EXPECT().IsValid(gomock.Any(), "FF-1").Return(true, nil)
	valid, err := s.breaker.IsValid(context.Background(), "FF-1")
	s.Require().NoError(err)
	s.True(valid)
}

func (s *BreakerSuite) TestDeadlineDuringLookupDoesNotMoveCircuit() {
	s.next.EXPECT().IsValid(gomock.Any(), "FF-1").
		DoAndReturn(func(ctx context.Context, _ string) (bool, error) {
			<-ctx.Done()
			return false, NewError(ErrorTimeout, "lookup abandoned", ctx.Err())
		}).Times(2)

	for i := 0; i < 2; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
		_, err := s.breaker.IsValid(ctx, "FF-1")
		cancel()
		s.ErrorIs(err, context.DeadlineExceeded)
	}
	s.Equal(circuit.StateClosed, s.breaker.State())
	s.NotContains(s.logs.String(), "circuit opened")
}

func (s *BreakerSuite) TestBadDataDoesNotMoveCircuit() {
	s.next.EXPECT().IsValid(gomock.Any(), gomock.Any()).
		Return(false, NewError(ErrorBadData, "unreadable number", nil)).Times(3)

	for i := 0; i < 3; i++ {
		_, err := s.breaker.IsValid(context.Background(), "FF-\x00")
		s.Equal(ErrorBadData, GetCategory(err))
	}
	s.Equal(circuit.StateClosed, s.breaker.State())
}

func (s *BreakerSuite) TestServiceTimeoutOpensCircuit() {
	// The service's own deadline, not the caller's, is a service fault.
	s.next.EXPECT().IsValid(gomock.Any(), gomock.Any()).
		Return(false, NewError(ErrorTimeout, "no answer", context.DeadlineExceeded)).Times(2)

	for i := 0; i < 2; i++ {
		s.breaker.IsValid(context.Background(), "FF-1")
	}
	s.Equal(circuit.StateOpen, s.breaker.State())
}

func (s *BreakerSuite) TestOutParamAdapterCarriesCallerContext() {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "caller")
	s.next.EXPECT().IsValid(gomock.Any(), "FF-1").
		DoAndReturn(func(got context.Context, _ string) (bool, error) {
			s.Equal("caller", got.Value(ctxKey{}))
			return true, nil
		})

	var valid bool
	ports.OutParam(ctx, s.breaker).IsValidOut("FF-1", &valid)
	s.True(valid)
}
