package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"learntechnotes-backend/internal/client"
	"learntechnotes-backend/internal/dto"
	"learntechnotes-backend/internal/model"
	"learntechnotes-backend/internal/repository"
	"learntechnotes-backend/internal/token"
)

var (
	// ErrInvalidOrExpiredLink covers both unknown and expired tokens so the
	// response does not reveal which case the caller hit.
	ErrInvalidOrExpiredLink = errors.New("invalid or expired download link")

	// ErrUnknownCourseMapping means a token was redeemed for a course with no
	// delivery URL configured. A catalog gap, not a client mistake.
	ErrUnknownCourseMapping = errors.New("no download mapping for course")
)

type CheckoutService interface {
	CreateOrder(ctx context.Context, amount int64) (*model.RazorpayOrder, error)
	VerifyPayment(ctx context.Context, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error)
	ResolveDownload(ctx context.Context, tokenValue string) (string, error)
}

type checkoutServiceImpl struct {
	razorpayClient client.RazorpayClient
	tokens         *token.Store
	courseRepo     repository.CourseRepository
	orderRepo      repository.OrderRepository
	paymentRepo    repository.PaymentRepository
	serviceBaseUrl string
	tokenTTL       time.Duration
}

func NewCheckoutService(
	razorpayClient client.RazorpayClient,
	tokens *token.Store,
	courseRepo repository.CourseRepository,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	serviceBaseUrl string,
	tokenTTL time.Duration,
) CheckoutService {
	return &checkoutServiceImpl{
		razorpayClient: razorpayClient,
		tokens:         tokens,
		courseRepo:     courseRepo,
		orderRepo:      orderRepo,
		paymentRepo:    paymentRepo,
		serviceBaseUrl: serviceBaseUrl,
		tokenTTL:       tokenTTL,
	}
}

// CreateOrder registers a payment order with Razorpay. Amount arrives in
// rupees and is converted to paise for the gateway.
func (s *checkoutServiceImpl) CreateOrder(ctx context.Context, amount int64) (*model.RazorpayOrder, error) {
	receipt := fmt.Sprintf("receipt_%d", time.Now().UnixMilli())

	order, err := s.razorpayClient.CreateOrder(ctx, amount*100, "INR", receipt)
	if err != nil {
		return nil, fmt.Errorf("razorpay api create order: %w", err)
	}

	if err := s.orderRepo.Create(ctx, &model.Order{
		OrderID:  order.ID,
		Receipt:  order.Receipt,
		Status:   "CREATED",
		Amount:   order.Amount,
		Currency: order.Currency,
	}); err != nil {
		// the gateway order exists either way; losing the local row must not
		// lose the sale
		log.Println("store order in db:", err)
	}

	return order, nil
}

// VerifyPayment authenticates the checkout callback. A valid signature mints
// a one-time download token; an invalid one is a negative outcome, not an
// error.
func (s *checkoutServiceImpl) VerifyPayment(ctx context.Context, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error) {
	ok := s.razorpayClient.VerifyPaymentSignature(
		req.RazorpayOrderID,
		req.RazorpayPaymentID,
		req.RazorpaySignature,
	)
	if !ok {
		return &dto.VerifyPaymentResponse{Success: false}, nil
	}

	s.recordVerifiedPayment(ctx, req)

	tokenValue, err := s.tokens.Issue(req.CourseName, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issue download token: %w", err)
	}

	return &dto.VerifyPaymentResponse{
		Success:     true,
		DownloadURL: fmt.Sprintf("%s/download/%s", s.serviceBaseUrl, tokenValue),
	}, nil
}

// recordVerifiedPayment is bookkeeping only: the verified signature, not the
// local database, decides whether the buyer gets a link.
func (s *checkoutServiceImpl) recordVerifiedPayment(ctx context.Context, req *dto.VerifyPaymentRequest) {
	exists, err := s.paymentRepo.Exists(ctx, req.RazorpayPaymentID)
	if err != nil {
		log.Println("check payment exists:", err)
		return
	}
	if exists {
		log.Println("payment already recorded:", req.RazorpayPaymentID)
		return
	}

	if err := s.paymentRepo.Record(ctx, &model.Payment{
		PaymentID:  req.RazorpayPaymentID,
		OrderID:    req.RazorpayOrderID,
		CourseName: req.CourseName,
	}); err != nil {
		log.Println("record payment:", err)
	}

	if err := s.orderRepo.MarkPaid(ctx, req.RazorpayOrderID, req.RazorpayPaymentID); err != nil {
		log.Println("mark order paid:", err)
	}
}

// ResolveDownload consumes the token and returns the delivery URL for the
// course it was bound to. The token is spent even when the course mapping
// turns out to be missing: it guards access attempts, not delivery.
func (s *checkoutServiceImpl) ResolveDownload(ctx context.Context, tokenValue string) (string, error) {
	courseName, err := s.tokens.Redeem(tokenValue)
	if err != nil {
		return "", ErrInvalidOrExpiredLink
	}

	course, err := s.courseRepo.FindByName(ctx, courseName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Println("no download mapping for course:", courseName)
			return "", ErrUnknownCourseMapping
		}
		return "", fmt.Errorf("find course %q: %w", courseName, err)
	}

	return course.DownloadURL, nil
}
