package loan

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Stage is one of the ordered phases of a loan application.
type Stage string

const (
	StageIdentity      Stage = "identity"
	StageIncome        Stage = "income"
	StagePayment       Stage = "payment"
	StagePendingReview Stage = "pending_review"
)

// IncomeBrackets are the selectable monthly income representatives, in KES.
var IncomeBrackets = []int{10000, 20000, 30000, 50000, 75000, 100000}

const (
	DefaultPrincipal = 5000
	DefaultTermDays  = 30

	maxNationalIDLen = 8
	maxPhoneLen      = 10
	maxPINLen        = 6
	dateLayout       = "2006-01-02"
)

var ErrLimitDrawBusy = errors.New("limit draw already in progress")

// SessionPort receives the login event fired when the identity stage
// completes. The HTTP layer plugs in the Redis-backed session store.
type SessionPort interface {
	Login(name, phoneNumber string)
}

// Record holds everything the borrower has entered so far.
type Record struct {
	FullName        string `json:"full_name"`
	NationalID      string `json:"national_id"`
	DateOfBirth     string `json:"date_of_birth"`
	PhoneNumber     string `json:"phone_number"`
	PIN             string `json:"pin"`
	IncomeBracket   int    `json:"income_bracket"`
	Principal       int    `json:"principal"`
	TermDays        int    `json:"term_days"`
	TermsAccepted   bool   `json:"terms_accepted"`
	TransactionCode string `json:"transaction_code"`
	ApprovedLimit   *int   `json:"approved_limit"`
}

// Application is the workflow for a single loan application. It owns the
// mutable record, the current stage and the last rejection reason. All
// mutation goes through edit events and stage submits; a failed check sets
// Reason and leaves stage and data untouched. The struct serializes to JSON
// so it can live in Redis between HTTP events.
type Application struct {
	ID           string `json:"id"`
	Stage        Stage  `json:"stage"`
	Record       Record `json:"record"`
	Quote        *Quote `json:"quote,omitempty"`
	Reason       string `json:"reason,omitempty"`
	LimitPending bool   `json:"limit_pending"`
	LoginSent    bool   `json:"login_sent"`
	CodeAccepted bool   `json:"code_accepted"`
}

// NewApplication starts an empty application at the identity stage. A quick
// quote from the calculator may pre-seed amount and term; zero values fall
// back to the defaults.
func NewApplication(id string, principal, termDays int) *Application {
	if principal <= 0 {
		principal = DefaultPrincipal
	}
	if !IsValidTerm(termDays) {
		termDays = DefaultTermDays
	}
	a := &Application{
		ID:    id,
		Stage: StageIdentity,
		Record: Record{
			Principal: principal,
			TermDays:  termDays,
		},
	}
	a.reprice()
	return a
}

func (a *Application) reprice() {
	q, err := PriceLoan(a.Record.Principal, a.Record.TermDays)
	if err != nil {
		a.Quote = nil
		return
	}
	a.Quote = &q
}

func (a *Application) reject(reason string) bool {
	a.Reason = reason
	return false
}

// ApplyEdit applies a single field-edit event. Digit-constrained fields are
// filtered the same way the input widgets filter keystrokes, so a stored
// value can never contain characters a user could not have typed. Returns
// false when the edit is rejected; the previous value is kept.
func (a *Application) ApplyEdit(field, raw string) bool {
	if a.Stage == StagePendingReview {
		return a.reject("Application is already under review")
	}
	a.Reason = ""
	switch field {
	case "full_name":
		a.Record.FullName = strings.TrimSpace(raw)
	case "national_id":
		a.Record.NationalID = FilterDigits(raw, maxNationalIDLen)
	case "date_of_birth":
		if _, err := time.Parse(dateLayout, raw); err != nil {
			return a.reject("Enter your date of birth as YYYY-MM-DD")
		}
		a.Record.DateOfBirth = raw
	case "phone_number":
		a.Record.PhoneNumber = FilterDigits(raw, maxPhoneLen)
	case "pin":
		a.Record.PIN = FilterDigits(raw, maxPINLen)
	case "income_bracket":
		v, err := strconv.Atoi(raw)
		if err != nil || !isIncomeBracket(v) {
			return a.reject("Select a monthly income bracket from the list")
		}
		a.Record.IncomeBracket = v
	case "amount":
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return a.reject("Loan amount must be a positive number")
		}
		if a.Record.ApprovedLimit != nil && v > *a.Record.ApprovedLimit {
			return a.reject("Requested amount exceeds your approved limit")
		}
		a.Record.Principal = v
		a.reprice()
	case "term_days":
		v, err := strconv.Atoi(raw)
		if err != nil || !IsValidTerm(v) {
			return a.reject("Repayment period must be 14, 30 or 60 days")
		}
		a.Record.TermDays = v
		a.reprice()
	case "terms_accepted":
		a.Record.TermsAccepted = raw == "true" || raw == "1"
	case "transaction_code":
		if a.CodeAccepted {
			return a.reject("Payment has already been confirmed")
		}
		a.Record.TransactionCode = strings.ToUpper(strings.TrimSpace(raw))
	default:
		return a.reject("Unknown field: " + field)
	}
	return true
}

func isIncomeBracket(v int) bool {
	for _, b := range IncomeBrackets {
		if b == v {
			return true
		}
	}
	return false
}

// SubmitIdentity checks the identity stage and advances to the income stage.
// On the first successful transition the login event fires with the
// applicant's name and phone number.
func (a *Application) SubmitIdentity(today time.Time, session SessionPort) bool {
	a.Reason = ""
	if strings.TrimSpace(a.Record.FullName) == "" {
		return a.reject("Enter your full name as it appears on your ID")
	}
	if !IsValidNationalID(a.Record.NationalID) {
		return a.reject("National ID must be 7 or 8 digits")
	}
	dob, err := time.Parse(dateLayout, a.Record.DateOfBirth)
	if err != nil {
		return a.reject("Enter your date of birth as YYYY-MM-DD")
	}
	if !IsAdult(dob, today) {
		return a.reject("You must be at least 18 years old to apply")
	}
	if !IsValidPhone(a.Record.PhoneNumber) {
		return a.reject("Phone number must be exactly 10 digits")
	}
	if !IsValidPIN(a.Record.PIN) {
		return a.reject("PIN must be 4 to 6 digits")
	}
	if a.Stage == StageIdentity {
		a.Stage = StageIncome
		if session != nil && !a.LoginSent {
			session.Login(a.Record.FullName, a.Record.PhoneNumber)
			a.LoginSent = true
		}
	}
	return true
}

// BeginLimitDraw starts the one asynchronous step of the flow. It returns
// ErrLimitDrawBusy while a draw is outstanding so duplicate submits are
// dropped, and false with a reason when the stage preconditions fail.
func (a *Application) BeginLimitDraw() (bool, error) {
	a.Reason = ""
	if a.Stage != StageIncome {
		return a.reject("Complete the identity step first"), nil
	}
	if a.Record.ApprovedLimit != nil {
		return a.reject("Your credit limit has already been assigned"), nil
	}
	if a.LimitPending {
		return false, ErrLimitDrawBusy
	}
	if a.Record.IncomeBracket == 0 {
		return a.reject("Select your monthly income bracket"), nil
	}
	a.LimitPending = true
	return true, nil
}

// CompleteLimitDraw records the drawn limit. The limit is immutable once
// assigned; if the current requested amount exceeds it, the amount is clamped
// down and the quote recomputed.
func (a *Application) CompleteLimitDraw(limit int) {
	a.LimitPending = false
	if a.Record.ApprovedLimit != nil {
		return
	}
	a.Record.ApprovedLimit = &limit
	if a.Record.Principal > limit {
		a.Record.Principal = limit
		a.reprice()
	}
}

// BirthDate exposes the parsed date of birth for the limit draw. It is only
// valid after the identity stage has been submitted.
func (a *Application) BirthDate() (time.Time, error) {
	return time.Parse(dateLayout, a.Record.DateOfBirth)
}

// SubmitOffer checks the priced offer and advances to the payment stage.
func (a *Application) SubmitOffer() bool {
	a.Reason = ""
	if a.Stage != StageIncome {
		return a.reject("Complete the identity step first")
	}
	if a.Record.ApprovedLimit == nil {
		return a.reject("Check your credit limit before continuing")
	}
	if a.Record.Principal <= 0 {
		return a.reject("Loan amount must be a positive number")
	}
	if a.Record.Principal > *a.Record.ApprovedLimit {
		return a.reject("Requested amount exceeds your approved limit")
	}
	if !a.Record.TermsAccepted {
		return a.reject("You must accept the Terms & Conditions to continue")
	}
	a.reprice()
	a.Stage = StagePayment
	return true
}

// SubmitPayment verifies the M-Pesa confirmation code for the processing fee
// and moves the application into review. A bad code keeps the entered value
// so the user can correct and resubmit.
func (a *Application) SubmitPayment() bool {
	a.Reason = ""
	if a.Stage != StagePayment {
		return a.reject("Complete the loan offer step first")
	}
	if !IsValidTransactionCode(a.Record.TransactionCode) {
		return a.reject("Enter a valid M-Pesa confirmation code (starts with T)")
	}
	a.CodeAccepted = true
	a.Stage = StagePendingReview
	return true
}

// Snapshot is the engine output consumed by the rendering layer.
type Snapshot struct {
	ID           string `json:"id"`
	Stage        Stage  `json:"stage"`
	Record       Record `json:"record"`
	Quote        *Quote `json:"quote,omitempty"`
	Reason       string `json:"reason,omitempty"`
	LimitPending bool   `json:"limit_pending"`
}

func (a *Application) Snapshot() Snapshot {
	rec := a.Record
	rec.PIN = "" // never echoed back to the client
	return Snapshot{
		ID:           a.ID,
		Stage:        a.Stage,
		Record:       rec,
		Quote:        a.Quote,
		Reason:       a.Reason,
		LimitPending: a.LimitPending,
	}
}
