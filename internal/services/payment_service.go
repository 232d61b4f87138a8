package services

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"rooya_backend/internal/config"
	"rooya_backend/internal/email"
	"rooya_backend/internal/logger"
	"rooya_backend/internal/models"
	"rooya_backend/internal/repositories"
	"rooya_backend/pkg/apperrors"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PaymentService interface {
	// CreateCheckout starts a Stripe Checkout Session for a plan purchase.
	// The session carries user and plan in metadata; activation happens
	// only when the webhook confirms completion.
	CreateCheckout(db *gorm.DB, userID, planID string) (url, sessionID string, err error)

	// HandleWebhook verifies the signature and processes the event.
	// Reprocessing a delivered event is a no-op: payments are idempotent
	// on the provider reference.
	HandleWebhook(db *gorm.DB, payload []byte, sigHeader string) error

	History(db *gorm.DB, userID string, limit, offset int) ([]models.Payment, error)
}

type paymentService struct {
	paymentRepo repositories.PaymentRepository
	planRepo    repositories.PlanRepository
	userRepo    repositories.UserRepository
	quota       QuotaService
	mailer      email.Provider
	cfg         *config.Config
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	planRepo repositories.PlanRepository,
	userRepo repositories.UserRepository,
	quota QuotaService,
	mailer email.Provider,
	cfg *config.Config,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		planRepo:    planRepo,
		userRepo:    userRepo,
		quota:       quota,
		mailer:      mailer,
		cfg:         cfg,
	}
}

// toCents converts a dollar price to integer cents. Truncating instead of
// rounding would undercharge any price whose cents are not exact in binary
// (19.99 truncates to 1998).
func toCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

func (s *paymentService) CreateCheckout(db *gorm.DB, userID, planID string) (string, string, error) {
	plan, err := s.planRepo.FindByID(db, planID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPlanNotFound) {
			return "", "", apperrors.ErrPlanNotAvailable
		}
		return "", "", apperrors.InternalError(err)
	}
	if !plan.IsActive || plan.IsTrial {
		return "", "", apperrors.ErrPlanNotAvailable
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(plan.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(plan.Name),
					},
					UnitAmount: stripe.Int64(toCents(plan.Price)),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.cfg.Stripe.SuccessURL),
		CancelURL:  stripe.String(s.cfg.Stripe.CancelURL),
	}
	params.AddMetadata("user_id", userID)
	params.AddMetadata("plan_id", plan.ID)
	// Mirrored onto the PaymentIntent so failure events can be attributed
	// without a session lookup.
	params.PaymentIntentData = &stripe.CheckoutSessionPaymentIntentDataParams{}
	params.PaymentIntentData.AddMetadata("user_id", userID)
	params.PaymentIntentData.AddMetadata("plan_id", plan.ID)

	sess, err := session.New(params)
	if err != nil {
		logger.WithError(err).Error("stripe checkout session failed", "user_id", userID, "plan_id", planID)
		return "", "", apperrors.ErrPaymentProvider
	}

	return sess.URL, sess.ID, nil
}

func (s *paymentService) HandleWebhook(db *gorm.DB, payload []byte, sigHeader string) error {
	event, err := webhook.ConstructEventWithOptions(
		payload,
		sigHeader,
		s.cfg.Stripe.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		return apperrors.ErrPaymentSignature
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return apperrors.NewBadRequestError("Invalid session payload")
		}
		return s.completeCheckout(db, &sess)

	case "checkout.session.expired":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return apperrors.NewBadRequestError("Invalid session payload")
		}
		return s.recordFailure(db, sess.ID, sess.Metadata, sess.AmountTotal, string(sess.Currency), models.PaymentStatusCancelled)

	case "checkout.session.async_payment_failed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return apperrors.NewBadRequestError("Invalid session payload")
		}
		return s.recordFailure(db, sess.ID, sess.Metadata, sess.AmountTotal, string(sess.Currency), models.PaymentStatusFailed)

	case "payment_intent.payment_failed":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return apperrors.NewBadRequestError("Invalid payment intent payload")
		}
		return s.recordFailure(db, intent.ID, intent.Metadata, intent.Amount, string(intent.Currency), models.PaymentStatusFailed)

	default:
		// Unhandled event types are acknowledged, not errors.
		logger.Debug("ignoring stripe event", "type", string(event.Type))
		return nil
	}
}

// completeCheckout records the payment and activates the subscription in
// one transaction. A redelivered event finds the existing payment row and
// returns without touching the ledger.
func (s *paymentService) completeCheckout(db *gorm.DB, sess *stripe.CheckoutSession) error {
	userID := sess.Metadata["user_id"]
	planID := sess.Metadata["plan_id"]
	if userID == "" || planID == "" {
		return apperrors.NewBadRequestError("Session metadata missing user or plan")
	}

	plan, err := s.planRepo.FindByID(db, planID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPlanNotFound) {
			return apperrors.ErrPlanNotAvailable
		}
		return apperrors.InternalError(err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.paymentRepo.FindByReferenceForUpdate(tx, sess.ID); err == nil {
			return nil
		} else if !apperrors.Is(err, repositories.ErrPaymentNotFound) {
			return apperrors.InternalError(err)
		}

		now := time.Now()
		meta, _ := json.Marshal(sess.Metadata)
		payment := &models.Payment{
			UserID:    userID,
			PlanID:    &planID,
			Amount:    float64(sess.AmountTotal) / 100,
			Currency:  string(sess.Currency),
			Status:    models.PaymentStatusSucceeded,
			Reference: sess.ID,
			Metadata:  datatypes.JSON(meta),
			PaidAt:    &now,
		}
		if err := s.paymentRepo.Create(tx, payment); err != nil {
			if apperrors.Is(err, repositories.ErrPaymentAlreadyExists) {
				return nil
			}
			return apperrors.InternalError(err)
		}

		expiresAt := now.AddDate(0, 0, plan.DurationDays)
		_, err := s.quota.ActivateSubscription(tx, userID, planID, sess.ID, &expiresAt)
		return err
	})
	if err != nil {
		return err
	}

	s.sendReceipt(db, userID, plan, float64(sess.AmountTotal)/100, string(sess.Currency))
	return nil
}

// recordFailure keeps a Payment row for a failed or abandoned charge so it
// can be inspected later. Events without user metadata cannot be attributed
// and are acked without a record.
func (s *paymentService) recordFailure(db *gorm.DB, reference string, meta map[string]string, amountCents int64, currency string, status models.PaymentStatus) error {
	userID := meta["user_id"]
	if userID == "" {
		logger.Debug("payment failure without user metadata", "reference", reference)
		return nil
	}

	payment := &models.Payment{
		UserID:    userID,
		Amount:    float64(amountCents) / 100,
		Currency:  currency,
		Status:    status,
		Reference: reference,
	}
	if planID := meta["plan_id"]; planID != "" {
		payment.PlanID = &planID
	}

	if err := s.paymentRepo.Create(db, payment); err != nil {
		if apperrors.Is(err, repositories.ErrPaymentAlreadyExists) {
			return nil
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *paymentService) History(db *gorm.DB, userID string, limit, offset int) ([]models.Payment, error) {
	payments, err := s.paymentRepo.FindByUser(db, userID, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return payments, nil
}

func (s *paymentService) sendReceipt(db *gorm.DB, userID string, plan *models.Plan, amount float64, currency string) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		logger.WithError(err).Warn("receipt recipient lookup failed", "user_id", userID)
		return
	}

	go func() {
		msg := email.ReceiptEmail(user.Email, plan.Name, amount, currency)
		if err := s.mailer.Send(context.Background(), msg); err != nil {
			logger.WithError(err).Warn("failed to send receipt email", "user_id", userID)
		}
	}()
}
