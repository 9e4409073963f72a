package mapper

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	catalogmapper "github.com/Apurer/petshow-api/internal/domains/catalog/adapters/http/mapper"
	catalogdomain "github.com/Apurer/petshow-api/internal/domains/catalog/domain"
	"github.com/Apurer/petshow-api/internal/domains/participation/application"
	types "github.com/Apurer/petshow-api/internal/domains/participation/application/types"
	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
	apierrors "github.com/Apurer/petshow-api/internal/shared/errors"
)

// RegisterRequest enrolls one pet. RegistrationDate defaults to today and may only name today.
type RegisterRequest struct {
	PetID            int64  `json:"petId" binding:"required,gt=0"`
	EventID          int64  `json:"eventId" binding:"required,gt=0"`
	RegistrationDate string `json:"registrationDate,omitempty"`
}

// TransferRequest moves a registration. ConfirmTopUp authorises an extra payment when the target costs more.
type TransferRequest struct {
	NewEventID   int64  `json:"newEventId" binding:"required,gt=0"`
	Reason       string `json:"reason,omitempty"`
	ConfirmTopUp bool   `json:"confirmTopUp"`
}

// WithdrawRequest cancels a registration.
type WithdrawRequest struct {
	Reason string `json:"reason,omitempty"`
}

// AttendanceRequest marks an entry.
type AttendanceRequest struct {
	Status string `json:"status" binding:"required"`
}

// ScoreRequest records a placement result.
type ScoreRequest struct {
	Score *float64 `json:"score"`
}

// AwardSeed is one award row to create for an event.
type AwardSeed struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
	Special     bool   `json:"special"`
}

// SeedAwardsRequest creates the award rows of an event.
type SeedAwardsRequest struct {
	Awards []AwardSeed `json:"awards" binding:"required,dive"`
}

// AssignAwardRequest binds a special award to a pet.
type AssignAwardRequest struct {
	AwardName   string `json:"awardName" binding:"required"`
	PetID       int64  `json:"petId" binding:"required,gt=0"`
	Description string `json:"description,omitempty"`
}

type Registration struct {
	ID               int64   `json:"id"`
	OwnerID          int64   `json:"ownerId"`
	EventID          int64   `json:"eventId"`
	RegistrationDate string  `json:"registrationDate"`
	TotalPaid        float64 `json:"totalPaid"`
	PaidAt           string  `json:"paidAt"`
	Status           string  `json:"status"`
	CancelledOn      string  `json:"cancelledOn,omitempty"`
}

type Entry struct {
	ID             int64    `json:"id"`
	RegistrationID int64    `json:"registrationId"`
	PetID          int64    `json:"petId"`
	EventID        int64    `json:"eventId"`
	Attendance     string   `json:"attendance"`
	Result         *float64 `json:"result,omitempty"`
}

type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RegistrationResult struct {
	Registration Registration `json:"registration"`
	Entry        *Entry       `json:"entry,omitempty"`
	Amount       float64      `json:"amount"`
	Discounted   bool         `json:"discounted"`
	Warnings     []Warning    `json:"warnings"`
	Replayed     bool         `json:"replayed,omitempty"`
}

type RegistrationQuote struct {
	EventID        int64     `json:"eventId"`
	PetID          int64     `json:"petId"`
	Amount         float64   `json:"amount"`
	Discounted     bool      `json:"discounted"`
	Warnings       []Warning `json:"warnings"`
	Standing       Standing  `json:"standing"`
	Open           bool      `json:"open"`
	DeadlinePassed bool      `json:"deadlinePassed"`
	AlreadyEntered bool      `json:"alreadyEntered"`
}

type Settlement struct {
	Delta    float64 `json:"delta"`
	NewTotal float64 `json:"newTotal"`
	TopUp    float64 `json:"topUp"`
	Refund   float64 `json:"refund"`
}

type TransferQuote struct {
	RegistrationID int64      `json:"registrationId"`
	FromEventID    int64      `json:"fromEventId"`
	ToEventID      int64      `json:"toEventId"`
	Settlement     Settlement `json:"settlement"`
}

type TransferResult struct {
	Registration Registration `json:"registration"`
	FromEventID  int64        `json:"fromEventId"`
	Entries      []Entry      `json:"entries"`
	Settlement   Settlement   `json:"settlement"`
	Warnings     []Warning    `json:"warnings"`
}

type Refund struct {
	DaysUntil int     `json:"daysUntilEvent"`
	Percent   int     `json:"percent"`
	Amount    float64 `json:"amount"`
}

type WithdrawalResult struct {
	Registration   Registration `json:"registration"`
	Refund         Refund       `json:"refund"`
	RemovedEntries int          `json:"removedEntries"`
}

type WithdrawalQuote struct {
	RegistrationID int64  `json:"registrationId"`
	EventID        int64  `json:"eventId"`
	Refund         Refund `json:"refund"`
}

type RegistrationDetails struct {
	Registration Registration `json:"registration"`
	Entries      []Entry      `json:"entries"`
}

type RegistrationSummary struct {
	RegistrationID   int64   `json:"registrationId"`
	EventID          int64   `json:"eventId"`
	EventName        string  `json:"eventName"`
	EventDate        string  `json:"eventDate"`
	RegistrationDate string  `json:"registrationDate"`
	TotalPaid        float64 `json:"totalPaid"`
	Status           string  `json:"status"`
	CancelledOn      string  `json:"cancelledOn,omitempty"`
	PetIDs           []int64 `json:"petIds"`
}

type Standing struct {
	EventID         int64 `json:"eventId"`
	Participants    int   `json:"participants"`
	MaxParticipants int   `json:"maxParticipants"`
	AvailableSpots  int   `json:"availableSpots"`
}

type Placement struct {
	Rank    int     `json:"rank"`
	EntryID int64   `json:"entryId"`
	PetID   int64   `json:"petId"`
	Result  float64 `json:"result"`
}

type Award struct {
	ID          int64  `json:"id"`
	EventID     int64  `json:"eventId"`
	PetID       *int64 `json:"petId,omitempty"`
	Special     bool   `json:"special"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"`
}

type ScoreResult struct {
	Entry   Entry       `json:"entry"`
	Ranking []Placement `json:"ranking"`
	Awards  []Award     `json:"awards"`
}

type LogEntry struct {
	ID              int64   `json:"id"`
	RegistrationID  int64   `json:"registrationId"`
	Action          string  `json:"action"`
	At              string  `json:"at"`
	OriginalEventID int64   `json:"originalEventId"`
	NewEventID      *int64  `json:"newEventId,omitempty"`
	Reason          string  `json:"reason,omitempty"`
	Refund          float64 `json:"refundAmount"`
	TopUp           float64 `json:"topUpAmount"`
}

// ToRegisterInput validates the wire date against today and builds the application command.
func ToRegisterInput(ownerID int64, req RegisterRequest, idempotencyKey string, now time.Time) (types.RegisterInput, error) {
	day, err := catalogmapper.ParseDate("registrationDate", req.RegistrationDate)
	if err != nil {
		return types.RegisterInput{}, err
	}
	if today := catalogdomain.DateOf(now.UTC()); !day.IsZero() && !day.Equal(today) {
		return types.RegisterInput{}, fmt.Errorf("registrationDate must be today (%s)", catalogmapper.FormatDate(today))
	}
	return types.RegisterInput{
		OwnerID:          ownerID,
		PetID:            req.PetID,
		EventID:          req.EventID,
		RegistrationDate: day,
		IdempotencyKey:   idempotencyKey,
	}, nil
}

// ToSeeds converts the seed payload.
func ToSeeds(req SeedAwardsRequest) []domain.AwardSeed {
	seeds := make([]domain.AwardSeed, 0, len(req.Awards))
	for _, seed := range req.Awards {
		seeds = append(seeds, domain.AwardSeed{Name: seed.Name, Description: seed.Description, Special: seed.Special})
	}
	return seeds
}

func FromRegistration(reg *domain.Registration) Registration {
	out := Registration{
		ID:               reg.ID,
		OwnerID:          reg.OwnerID,
		EventID:          reg.EventID,
		RegistrationDate: catalogmapper.FormatDate(reg.RegistrationDate),
		TotalPaid:        reg.TotalPaid,
		PaidAt:           reg.PaidAt.UTC().Format(time.RFC3339),
		Status:           string(reg.Status),
	}
	if reg.CancelledOn != nil {
		out.CancelledOn = catalogmapper.FormatDate(*reg.CancelledOn)
	}
	return out
}

func FromEntry(entry *domain.Entry) Entry {
	return Entry{
		ID:             entry.ID,
		RegistrationID: entry.RegistrationID,
		PetID:          entry.PetID,
		EventID:        entry.EventID,
		Attendance:     string(entry.Attendance),
		Result:         entry.Result,
	}
}

func FromEntries(entries []*domain.Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, FromEntry(entry))
	}
	return out
}

func FromWarnings(warnings []domain.Warning) []Warning {
	out := make([]Warning, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, Warning{Code: string(w.Code), Message: w.Message})
	}
	return out
}

func FromRegistrationResult(result *types.RegistrationResult) RegistrationResult {
	out := RegistrationResult{
		Registration: FromRegistration(result.Registration),
		Amount:       result.Amount,
		Discounted:   result.Discounted,
		Warnings:     FromWarnings(result.Warnings),
		Replayed:     result.Replayed,
	}
	if result.Entry != nil {
		entry := FromEntry(result.Entry)
		out.Entry = &entry
	}
	return out
}

func FromRegistrationQuote(quote *types.RegistrationQuote) RegistrationQuote {
	return RegistrationQuote{
		EventID:        quote.EventID,
		PetID:          quote.PetID,
		Amount:         quote.Amount,
		Discounted:     quote.Discounted,
		Warnings:       FromWarnings(quote.Warnings),
		Standing:       FromStanding(&quote.Standing),
		Open:           quote.Open,
		DeadlinePassed: quote.DeadlinePassed,
		AlreadyEntered: quote.Registered,
	}
}

func fromSettlement(q domain.TransferQuote) Settlement {
	return Settlement{Delta: q.Delta, NewTotal: q.NewTotal, TopUp: q.TopUp, Refund: q.Refund}
}

func FromTransferQuote(quote *types.TransferQuote) TransferQuote {
	return TransferQuote{
		RegistrationID: quote.RegistrationID,
		FromEventID:    quote.FromEventID,
		ToEventID:      quote.ToEventID,
		Settlement:     fromSettlement(quote.Quote),
	}
}

func FromTransferResult(result *types.TransferResult) TransferResult {
	return TransferResult{
		Registration: FromRegistration(result.Registration),
		FromEventID:  result.FromEventID,
		Entries:      FromEntries(result.Entries),
		Settlement:   fromSettlement(result.Quote),
		Warnings:     FromWarnings(result.Warnings),
	}
}

func fromRefund(refund domain.Refund) Refund {
	return Refund{DaysUntil: refund.DaysUntil, Percent: refund.Percent, Amount: refund.Amount}
}

func FromWithdrawalResult(result *types.WithdrawalResult) WithdrawalResult {
	return WithdrawalResult{
		Registration:   FromRegistration(result.Registration),
		Refund:         fromRefund(result.Refund),
		RemovedEntries: result.RemovedEntries,
	}
}

func FromWithdrawalQuote(quote *types.WithdrawalQuote) WithdrawalQuote {
	return WithdrawalQuote{RegistrationID: quote.RegistrationID, EventID: quote.EventID, Refund: fromRefund(quote.Refund)}
}

func FromRegistrationDetails(details *types.RegistrationDetails) RegistrationDetails {
	return RegistrationDetails{
		Registration: FromRegistration(details.Registration),
		Entries:      FromEntries(details.Entries),
	}
}

func FromSummaries(list []domain.RegistrationSummary) []RegistrationSummary {
	out := make([]RegistrationSummary, 0, len(list))
	for _, s := range list {
		summary := RegistrationSummary{
			RegistrationID:   s.RegistrationID,
			EventID:          s.EventID,
			EventName:        s.EventName,
			EventDate:        catalogmapper.FormatDate(s.EventDate),
			RegistrationDate: catalogmapper.FormatDate(s.RegistrationDate),
			TotalPaid:        s.TotalPaid,
			Status:           string(s.Status),
			PetIDs:           append([]int64{}, s.PetIDs...),
		}
		if s.CancelledOn != nil {
			summary.CancelledOn = catalogmapper.FormatDate(*s.CancelledOn)
		}
		out = append(out, summary)
	}
	return out
}

func FromStanding(standing *domain.Standing) Standing {
	return Standing{
		EventID:         standing.EventID,
		Participants:    standing.Participants,
		MaxParticipants: standing.MaxParticipants,
		AvailableSpots:  standing.AvailableSpots,
	}
}

func FromAward(award *domain.Award) Award {
	out := Award{
		ID:          award.ID,
		EventID:     award.EventID,
		PetID:       award.PetID,
		Special:     award.Special,
		Name:        award.Name,
		Description: award.Description,
	}
	if award.Date != nil {
		out.Date = catalogmapper.FormatDate(*award.Date)
	}
	return out
}

func FromAwards(awards []*domain.Award) []Award {
	out := make([]Award, 0, len(awards))
	for _, award := range awards {
		out = append(out, FromAward(award))
	}
	return out
}

func FromScoreResult(result *types.ScoreResult) ScoreResult {
	ranking := make([]Placement, 0, len(result.Ranking))
	for _, p := range result.Ranking {
		ranking = append(ranking, Placement{Rank: p.Rank, EntryID: p.EntryID, PetID: p.PetID, Result: p.Result})
	}
	return ScoreResult{Entry: FromEntry(result.Entry), Ranking: ranking, Awards: FromAwards(result.Awards)}
}

func FromLog(rows []*domain.LogEntry) []LogEntry {
	out := make([]LogEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, LogEntry{
			ID:              row.ID,
			RegistrationID:  row.RegistrationID,
			Action:          string(row.Action),
			At:              row.At.UTC().Format(time.RFC3339),
			OriginalEventID: row.OriginalEventID,
			NewEventID:      row.NewEventID,
			Reason:          row.Reason,
			Refund:          row.Refund,
			TopUp:           row.TopUp,
		})
	}
	return out
}

// problemStatus maps lifecycle outcomes to HTTP statuses. Unlisted kinds are unprocessable.
var problemStatus = map[error]int{
	domain.ErrAlreadyRegistered:       http.StatusConflict,
	domain.ErrEventFull:               http.StatusConflict,
	domain.ErrPetAlreadyInTargetEvent: http.StatusConflict,
	domain.ErrIdempotencyConflict:     http.StatusConflict,
	domain.ErrRegistrationNotFound:    http.StatusNotFound,
	domain.ErrEntryNotFound:           http.StatusNotFound,
	domain.ErrAwardNotFound:           http.StatusNotFound,
	domain.ErrEventNotFound:           http.StatusNotFound,
	domain.ErrPetNotFound:             http.StatusNotFound,
	domain.ErrPetNotOwned:             http.StatusForbidden,
	domain.ErrTransferPaymentDeclined: http.StatusPaymentRequired,
}

// ProblemFor maps participation errors to problem details carrying a stable code extension.
func ProblemFor(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, application.ErrInvalidInput) {
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	if code, ok := domain.CodeOf(err); ok {
		status := http.StatusUnprocessableEntity
		if s, found := problemStatus[domain.KindOf(code)]; found {
			status = s
		}
		return apierrors.ForStatus(status).WithDetail(err.Error()).WithExtension("code", code), true
	}
	if errors.Is(err, application.ErrStoreTransactionFailed) {
		return apierrors.ErrInternal.WithDetail(application.ErrStoreTransactionFailed.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
