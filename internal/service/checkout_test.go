package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"learntechnotes-backend/internal/dto"
	"learntechnotes-backend/internal/model"
	"learntechnotes-backend/internal/token"
)

type stubGateway struct {
	order        *model.RazorpayOrder
	createErr    error
	signatureOK  bool
	lastReceipt  string
	lastAmount   int64
	lastCurrency string
}

func (s *stubGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*model.RazorpayOrder, error) {
	s.lastAmount = amount
	s.lastCurrency = currency
	s.lastReceipt = receipt
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.order, nil
}

func (s *stubGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return s.signatureOK
}

type stubCourses struct {
	courses map[string]*model.Course
}

func (s *stubCourses) Seed(ctx context.Context) error { return nil }

func (s *stubCourses) FindByName(ctx context.Context, name string) (*model.Course, error) {
	course, ok := s.courses[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return course, nil
}

func (s *stubCourses) List(ctx context.Context) ([]*model.Course, error) {
	var out []*model.Course
	for _, c := range s.courses {
		out = append(out, c)
	}
	return out, nil
}

type stubOrders struct {
	created []*model.Order
	paid    map[string]string // order id -> payment id
}

func (s *stubOrders) Create(ctx context.Context, order *model.Order) error {
	s.created = append(s.created, order)
	return nil
}

func (s *stubOrders) FindByOrderID(ctx context.Context, orderID string) (*model.Order, error) {
	for _, o := range s.created {
		if o.OrderID == orderID {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrders) MarkPaid(ctx context.Context, orderID, paymentID string) error {
	if s.paid == nil {
		s.paid = make(map[string]string)
	}
	s.paid[orderID] = paymentID
	return nil
}

type stubPayments struct {
	recorded []*model.Payment
}

func (s *stubPayments) Exists(ctx context.Context, paymentID string) (bool, error) {
	for _, p := range s.recorded {
		if p.PaymentID == paymentID {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubPayments) Record(ctx context.Context, payment *model.Payment) error {
	s.recorded = append(s.recorded, payment)
	return nil
}

func newTestService(gateway *stubGateway) (CheckoutService, *token.Store, *stubOrders, *stubPayments) {
	tokens := token.NewStore()
	orders := &stubOrders{}
	payments := &stubPayments{}
	courses := &stubCourses{courses: map[string]*model.Course{
		"C Language Notes": {Name: "C Language Notes", Price: 49, Currency: "INR", DownloadURL: "https://drive.example/c-notes"},
	}}

	svc := NewCheckoutService(
		gateway,
		tokens,
		courses,
		orders,
		payments,
		"https://notes.example",
		5*time.Minute,
	)
	return svc, tokens, orders, payments
}

func TestCreateOrderConvertsToMinorUnits(t *testing.T) {
	gateway := &stubGateway{order: &model.RazorpayOrder{
		ID:       "order_abc",
		Amount:   4900,
		Currency: "INR",
		Receipt:  "receipt_x",
		Status:   "created",
	}}
	svc, _, orders, _ := newTestService(gateway)

	order, err := svc.CreateOrder(context.Background(), 49)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if gateway.lastAmount != 4900 {
		t.Errorf("amount sent to gateway: got %d, want 4900 paise", gateway.lastAmount)
	}
	if gateway.lastCurrency != "INR" {
		t.Errorf("currency mismatch: %q", gateway.lastCurrency)
	}
	if !strings.HasPrefix(gateway.lastReceipt, "receipt_") {
		t.Errorf("receipt format mismatch: %q", gateway.lastReceipt)
	}
	if order.ID != "order_abc" {
		t.Errorf("order id mismatch: %q", order.ID)
	}

	if len(orders.created) != 1 || orders.created[0].OrderID != "order_abc" {
		t.Errorf("order not persisted: %+v", orders.created)
	}
	if orders.created[0].Status != "CREATED" {
		t.Errorf("persisted status mismatch: %q", orders.created[0].Status)
	}
}

func TestCreateOrderGatewayFailure(t *testing.T) {
	gateway := &stubGateway{createErr: errors.New("gateway down")}
	svc, _, orders, _ := newTestService(gateway)

	if _, err := svc.CreateOrder(context.Background(), 49); err == nil {
		t.Fatal("expected error when gateway fails")
	}
	if len(orders.created) != 0 {
		t.Errorf("no local state may be written on gateway failure: %+v", orders.created)
	}
}

func TestVerifyPaymentInvalidSignature(t *testing.T) {
	gateway := &stubGateway{signatureOK: false}
	svc, tokens, _, payments := newTestService(gateway)

	resp, err := svc.VerifyPayment(context.Background(), &dto.VerifyPaymentRequest{
		RazorpayOrderID:   "order_abc",
		RazorpayPaymentID: "pay_abc",
		RazorpaySignature: "deadbeef",
		CourseName:        "C Language Notes",
	})
	if err != nil {
		t.Fatalf("verify payment: %v", err)
	}

	if resp.Success {
		t.Error("invalid signature must not verify")
	}
	if resp.DownloadURL != "" {
		t.Errorf("no download url on failure, got %q", resp.DownloadURL)
	}
	if tokens.Len() != 0 {
		t.Error("no token may be issued for an invalid signature")
	}
	if len(payments.recorded) != 0 {
		t.Error("no payment may be recorded for an invalid signature")
	}
}

func TestVerifyPaymentIssuesToken(t *testing.T) {
	gateway := &stubGateway{signatureOK: true}
	svc, tokens, orders, payments := newTestService(gateway)

	resp, err := svc.VerifyPayment(context.Background(), &dto.VerifyPaymentRequest{
		RazorpayOrderID:   "order_abc",
		RazorpayPaymentID: "pay_abc",
		RazorpaySignature: "sig",
		CourseName:        "C Language Notes",
	})
	if err != nil {
		t.Fatalf("verify payment: %v", err)
	}

	if !resp.Success {
		t.Fatal("valid signature must verify")
	}
	const prefix = "https://notes.example/download/"
	if !strings.HasPrefix(resp.DownloadURL, prefix) {
		t.Fatalf("download url mismatch: %q", resp.DownloadURL)
	}

	// the token embedded in the url is bound to the purchased course
	value := strings.TrimPrefix(resp.DownloadURL, prefix)
	course, err := tokens.Redeem(value)
	if err != nil {
		t.Fatalf("redeem issued token: %v", err)
	}
	if course != "C Language Notes" {
		t.Errorf("token bound to %q", course)
	}

	if len(payments.recorded) != 1 || payments.recorded[0].PaymentID != "pay_abc" {
		t.Errorf("payment audit row missing: %+v", payments.recorded)
	}
	if orders.paid["order_abc"] != "pay_abc" {
		t.Errorf("order not marked paid: %+v", orders.paid)
	}
}

func TestResolveDownload(t *testing.T) {
	gateway := &stubGateway{signatureOK: true}
	svc, tokens, _, _ := newTestService(gateway)

	value, err := tokens.Issue("C Language Notes", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	url, err := svc.ResolveDownload(context.Background(), value)
	if err != nil {
		t.Fatalf("resolve download: %v", err)
	}
	if url != "https://drive.example/c-notes" {
		t.Errorf("delivery url mismatch: %q", url)
	}

	// single use: the same link cannot be resolved twice
	if _, err := svc.ResolveDownload(context.Background(), value); !errors.Is(err, ErrInvalidOrExpiredLink) {
		t.Errorf("second resolve: got %v, want ErrInvalidOrExpiredLink", err)
	}
}

func TestResolveDownloadUnknownToken(t *testing.T) {
	svc, _, _, _ := newTestService(&stubGateway{})

	if _, err := svc.ResolveDownload(context.Background(), "nope"); !errors.Is(err, ErrInvalidOrExpiredLink) {
		t.Errorf("got %v, want ErrInvalidOrExpiredLink", err)
	}
}

func TestResolveDownloadExpiredToken(t *testing.T) {
	svc, tokens, _, _ := newTestService(&stubGateway{})

	value, err := tokens.Issue("C Language Notes", time.Millisecond)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	// expired and unknown tokens answer the same way
	if _, err := svc.ResolveDownload(context.Background(), value); !errors.Is(err, ErrInvalidOrExpiredLink) {
		t.Errorf("got %v, want ErrInvalidOrExpiredLink", err)
	}
}

func TestResolveDownloadUnknownCourseMapping(t *testing.T) {
	svc, tokens, _, _ := newTestService(&stubGateway{})

	value, err := tokens.Issue("Java Notes", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.ResolveDownload(context.Background(), value); !errors.Is(err, ErrUnknownCourseMapping) {
		t.Fatalf("got %v, want ErrUnknownCourseMapping", err)
	}

	// the token is spent even though delivery never happened
	if _, err := svc.ResolveDownload(context.Background(), value); !errors.Is(err, ErrInvalidOrExpiredLink) {
		t.Errorf("token must be consumed by the failed resolve, got %v", err)
	}
}
