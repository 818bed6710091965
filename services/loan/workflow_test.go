package loan

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type sessionRecorder struct {
	calls int
	name  string
	phone string
}

func (s *sessionRecorder) Login(name, phoneNumber string) {
	s.calls++
	s.name = name
	s.phone = phoneNumber
}

var testToday = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

func fillIdentity(a *Application) {
	a.ApplyEdit("full_name", "Juma Kamau")
	a.ApplyEdit("national_id", "12345678")
	a.ApplyEdit("date_of_birth", "1999-06-01") // 25 years old at testToday
	a.ApplyEdit("phone_number", "0712345678")
	a.ApplyEdit("pin", "1234")
}

func TestNewApplicationDefaults(t *testing.T) {
	a := NewApplication("app-1", 0, 0)
	assert.Equal(t, StageIdentity, a.Stage)
	assert.Equal(t, DefaultPrincipal, a.Record.Principal)
	assert.Equal(t, DefaultTermDays, a.Record.TermDays)
	assert.NotNil(t, a.Quote)
	assert.Equal(t, 6750, a.Quote.Total)
}

func TestNewApplicationSeededFromQuote(t *testing.T) {
	a := NewApplication("app-1", 12000, 14)
	assert.Equal(t, 12000, a.Record.Principal)
	assert.Equal(t, 14, a.Record.TermDays)
}

func TestIdentitySubmitRejections(t *testing.T) {
	session := &sessionRecorder{}

	a := NewApplication("app-1", 0, 0)
	assert.False(t, a.SubmitIdentity(testToday, session))
	assert.Contains(t, a.Reason, "full name")
	assert.Equal(t, StageIdentity, a.Stage)

	fillIdentity(a)
	a.ApplyEdit("national_id", "123456") // too short
	assert.False(t, a.SubmitIdentity(testToday, session))
	assert.Contains(t, a.Reason, "National ID")

	a.ApplyEdit("national_id", "12345678")
	a.ApplyEdit("date_of_birth", "2008-01-01") // 16 years old
	assert.False(t, a.SubmitIdentity(testToday, session))
	assert.Contains(t, a.Reason, "18")

	// No login event fired on any failed attempt, data kept.
	assert.Equal(t, 0, session.calls)
	assert.Equal(t, "Juma Kamau", a.Record.FullName)
}

func TestIdentitySubmitFiresLoginOnce(t *testing.T) {
	session := &sessionRecorder{}
	a := NewApplication("app-1", 0, 0)
	fillIdentity(a)

	assert.True(t, a.SubmitIdentity(testToday, session))
	assert.Equal(t, StageIncome, a.Stage)
	assert.Equal(t, 1, session.calls)
	assert.Equal(t, "Juma Kamau", session.name)
	assert.Equal(t, "0712345678", session.phone)

	// Re-validating the identity stage must not fire a second login.
	assert.True(t, a.SubmitIdentity(testToday, session))
	assert.Equal(t, 1, session.calls)
}

func TestEditFilteringAtBoundary(t *testing.T) {
	a := NewApplication("app-1", 0, 0)
	a.ApplyEdit("phone_number", "07-12 345678x90")
	assert.Equal(t, "0712345678", a.Record.PhoneNumber)

	a.ApplyEdit("pin", "12 34 56 78")
	assert.Equal(t, "123456", a.Record.PIN)

	a.ApplyEdit("national_id", "1234567890")
	assert.Equal(t, "12345678", a.Record.NationalID)
}

func advanceToIncome(t *testing.T, a *Application) {
	fillIdentity(a)
	assert.True(t, a.SubmitIdentity(testToday, nil))
}

func TestLimitDrawRequiresIncomeBracket(t *testing.T) {
	a := NewApplication("app-1", 0, 0)
	advanceToIncome(t, a)

	ok, err := a.BeginLimitDraw()
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, a.Reason, "income bracket")
}

func TestLimitDrawNotReentrant(t *testing.T) {
	a := NewApplication("app-1", 0, 0)
	advanceToIncome(t, a)
	a.ApplyEdit("income_bracket", "20000")

	ok, err := a.BeginLimitDraw()
	assert.NoError(t, err)
	assert.True(t, ok)

	// Second submit while the draw is outstanding is dropped.
	ok, err = a.BeginLimitDraw()
	assert.ErrorIs(t, err, ErrLimitDrawBusy)
	assert.False(t, ok)

	a.CompleteLimitDraw(15000)
	assert.False(t, a.LimitPending)
	assert.Equal(t, 15000, *a.Record.ApprovedLimit)
}

func TestLimitAssignedOnceAndClampsPrincipal(t *testing.T) {
	a := NewApplication("app-1", 5000, 30)
	advanceToIncome(t, a)
	a.ApplyEdit("income_bracket", "20000")

	ok, _ := a.BeginLimitDraw()
	assert.True(t, ok)
	a.CompleteLimitDraw(2000) // below the requested 5000
	assert.Equal(t, 2000, a.Record.Principal)
	assert.Equal(t, 2000, a.Quote.Principal)

	// No re-roll: a second draw attempt is refused and the limit stands.
	ok, err := a.BeginLimitDraw()
	assert.NoError(t, err)
	assert.False(t, ok)
	a.CompleteLimitDraw(40000)
	assert.Equal(t, 2000, *a.Record.ApprovedLimit)
}

func TestPrincipalEditAboveLimitRejected(t *testing.T) {
	a := NewApplication("app-1", 0, 0)
	advanceToIncome(t, a)
	a.ApplyEdit("income_bracket", "20000")
	ok, _ := a.BeginLimitDraw()
	assert.True(t, ok)
	a.CompleteLimitDraw(10000)

	assert.False(t, a.ApplyEdit("amount", "15000"))
	assert.Contains(t, a.Reason, "approved limit")
	assert.Equal(t, 5000, a.Record.Principal) // unchanged

	assert.True(t, a.ApplyEdit("amount", "8000"))
	assert.Equal(t, 8000, a.Quote.Principal)
}

func TestOfferSubmitRequiresTerms(t *testing.T) {
	a := NewApplication("app-1", 0, 0)
	advanceToIncome(t, a)
	a.ApplyEdit("income_bracket", "20000")
	ok, _ := a.BeginLimitDraw()
	assert.True(t, ok)
	a.CompleteLimitDraw(10000)

	assert.False(t, a.SubmitOffer())
	assert.Contains(t, a.Reason, "Terms")
	assert.Equal(t, StageIncome, a.Stage)

	a.ApplyEdit("terms_accepted", "true")
	assert.True(t, a.SubmitOffer())
	assert.Equal(t, StagePayment, a.Stage)
}

func advanceToPayment(t *testing.T, a *Application) {
	advanceToIncome(t, a)
	a.ApplyEdit("income_bracket", "20000")
	ok, _ := a.BeginLimitDraw()
	assert.True(t, ok)
	a.CompleteLimitDraw(15000)
	a.ApplyEdit("terms_accepted", "true")
	assert.True(t, a.SubmitOffer())
}

func TestPaymentStage(t *testing.T) {
	a := NewApplication("app-1", 0, 0)
	advanceToPayment(t, a)

	a.ApplyEdit("transaction_code", "XAB123456Y")
	assert.False(t, a.SubmitPayment())
	assert.Contains(t, a.Reason, "confirmation code")
	assert.Equal(t, StagePayment, a.Stage)
	// Bad code stays editable for correction.
	assert.Equal(t, "XAB123456Y", a.Record.TransactionCode)

	a.ApplyEdit("transaction_code", "t123456789") // normalized to uppercase
	assert.True(t, a.SubmitPayment())
	assert.Equal(t, StagePendingReview, a.Stage)

	// Accepted code is immutable; the terminal stage refuses edits.
	assert.False(t, a.ApplyEdit("transaction_code", "T987654321"))
	assert.Equal(t, "T123456789", a.Record.TransactionCode)
	assert.False(t, a.ApplyEdit("amount", "100"))
}

func TestEndToEndFlow(t *testing.T) {
	session := &sessionRecorder{}
	rng := rand.New(rand.NewSource(99))
	a := NewApplication("app-1", 0, 0)

	fillIdentity(a)
	assert.True(t, a.SubmitIdentity(testToday, session))
	assert.Equal(t, 1, session.calls)

	a.ApplyEdit("income_bracket", "20000")
	ok, err := a.BeginLimitDraw()
	assert.NoError(t, err)
	assert.True(t, ok)

	dob, err := a.BirthDate()
	assert.NoError(t, err)
	limit := AssignLimit(dob, testToday, rng)
	a.CompleteLimitDraw(limit)

	// Applicant is 25: the drawn limit sits in the middle band.
	assert.GreaterOrEqual(t, limit, 1500)
	assert.LessOrEqual(t, limit, 25000)
	assert.LessOrEqual(t, a.Record.Principal, limit)

	a.ApplyEdit("terms_accepted", "true")
	assert.True(t, a.SubmitOffer())

	a.ApplyEdit("transaction_code", "T123456789")
	assert.True(t, a.SubmitPayment())

	snap := a.Snapshot()
	assert.Equal(t, StagePendingReview, snap.Stage)
	assert.Empty(t, snap.Reason)
	assert.Empty(t, snap.Record.PIN) // PIN never leaves the engine
	assert.NotNil(t, snap.Quote)
	assert.Equal(t, snap.Quote.Principal+snap.Quote.Fee+snap.Quote.Interest, snap.Quote.Total)
}
