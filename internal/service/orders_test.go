package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/ferrogaz/website/internal/mailer"
	"github.com/ferrogaz/website/internal/model"
	"github.com/ferrogaz/website/internal/store"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

// recordingNotifier captures notification calls for assertions.
type recordingNotifier struct {
	received  []int64
	changed   []string
	cancelled []int64
	contacts  []int64
}

func (n *recordingNotifier) OrderReceived(_ context.Context, o model.Order) error {
	n.received = append(n.received, o.ID)
	return nil
}

func (n *recordingNotifier) OrderStatusChanged(_ context.Context, o model.Order, prev string) error {
	n.changed = append(n.changed, prev+"→"+o.Status)
	return nil
}

func (n *recordingNotifier) OrderCancelled(_ context.Context, o model.Order) error {
	n.cancelled = append(n.cancelled, o.ID)
	return nil
}

func (n *recordingNotifier) ContactMessageReceived(_ context.Context, m model.ContactMessage) error {
	n.contacts = append(n.contacts, m.ID)
	return nil
}

var _ mailer.Notifier = (*recordingNotifier)(nil)

func sampleDetails() model.OrderDetails {
	return model.OrderDetails{
		CustomerName:  "Ali Veli",
		CustomerEmail: "ali@example.com",
		CustomerPhone: "+90 555 111 22 33",
		Address:       "Sanayi Mah. 3. Sok. No:7, İstanbul",
		Items: []model.OrderItem{
			{ProductID: 1, Name: "Oksijen Tüpü 40L", Amount: 2, UnitPrice: 1250},
		},
	}
}

func TestOrderService_Create(t *testing.T) {
	n := &recordingNotifier{}
	s := NewOrderService(newTestDB(t), n)
	ctx := context.Background()

	order, err := s.Create(ctx, sampleDetails(), sql.NullInt64{})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if order.Status != model.OrderStatusPending {
		t.Errorf("status = %q, want pending", order.Status)
	}
	if len(n.received) != 1 {
		t.Errorf("received notifications = %d, want 1", len(n.received))
	}

	details, ok := order.ParseDetails()
	if !ok {
		t.Fatal("details should be structured JSON")
	}
	if details.CustomerName != "Ali Veli" {
		t.Errorf("customer name = %q", details.CustomerName)
	}
}

func TestOrderService_Create_Validation(t *testing.T) {
	s := NewOrderService(newTestDB(t), nil)
	ctx := context.Background()

	noName := sampleDetails()
	noName.CustomerName = "  "
	if _, err := s.Create(ctx, noName, sql.NullInt64{}); !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("missing name: err = %v, want ErrInvalidOrder", err)
	}

	noItems := sampleDetails()
	noItems.Items = nil
	if _, err := s.Create(ctx, noItems, sql.NullInt64{}); !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("missing items: err = %v, want ErrInvalidOrder", err)
	}

	badAmount := sampleDetails()
	badAmount.Items[0].Amount = 0
	if _, err := s.Create(ctx, badAmount, sql.NullInt64{}); !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("zero amount: err = %v, want ErrInvalidOrder", err)
	}
}

func TestOrderService_ChangeStatus_ForwardFlow(t *testing.T) {
	n := &recordingNotifier{}
	s := NewOrderService(newTestDB(t), n)
	ctx := context.Background()

	order, err := s.Create(ctx, sampleDetails(), sql.NullInt64{})
	if err != nil {
		t.Fatal(err)
	}

	for _, next := range []string{
		model.OrderStatusPreparing,
		model.OrderStatusShipping,
		model.OrderStatusCompleted,
	} {
		order, err = s.ChangeStatus(ctx, order.ID, next)
		if err != nil {
			t.Fatalf("ChangeStatus(%s) error: %v", next, err)
		}
		if order.Status != next {
			t.Errorf("status = %q, want %q", order.Status, next)
		}
	}
	if len(n.changed) != 3 {
		t.Errorf("status change notifications = %d, want 3", len(n.changed))
	}
}

func TestOrderService_ChangeStatus_RejectsBackward(t *testing.T) {
	s := NewOrderService(newTestDB(t), nil)
	ctx := context.Background()

	order, _ := s.Create(ctx, sampleDetails(), sql.NullInt64{})
	if _, err := s.ChangeStatus(ctx, order.ID, model.OrderStatusShipping); err != nil {
		t.Fatal(err)
	}

	if _, err := s.ChangeStatus(ctx, order.ID, model.OrderStatusPending); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("backward move: err = %v, want ErrInvalidTransition", err)
	}
}

func TestOrderService_ChangeStatus_CancelRequiresEndpoint(t *testing.T) {
	s := NewOrderService(newTestDB(t), nil)
	ctx := context.Background()

	order, _ := s.Create(ctx, sampleDetails(), sql.NullInt64{})
	if _, err := s.ChangeStatus(ctx, order.ID, model.OrderStatusCancelled); !errors.Is(err, ErrCancelViaPatch) {
		t.Errorf("err = %v, want ErrCancelViaPatch", err)
	}
}

func TestOrderService_ChangeStatus_SameStatusIsNoOp(t *testing.T) {
	s := NewOrderService(newTestDB(t), nil)
	ctx := context.Background()

	order, _ := s.Create(ctx, sampleDetails(), sql.NullInt64{})
	got, err := s.ChangeStatus(ctx, order.ID, model.OrderStatusPending)
	if err != nil {
		t.Fatalf("same-status change should succeed, got %v", err)
	}
	if got.Status != model.OrderStatusPending {
		t.Errorf("status = %q", got.Status)
	}
}

func TestOrderService_Cancel(t *testing.T) {
	n := &recordingNotifier{}
	s := NewOrderService(newTestDB(t), n)
	ctx := context.Background()

	order, _ := s.Create(ctx, sampleDetails(), sql.NullInt64{})
	cancelled, err := s.Cancel(ctx, order.ID, "müşteri vazgeçti", "telefonla bildirdi")
	if err != nil {
		t.Fatalf("Cancel() error: %v", err)
	}
	if !cancelled.IsCancelled() {
		t.Error("order should be cancelled")
	}
	if cancelled.CancelReason.String != "müşteri vazgeçti" {
		t.Errorf("reason = %q", cancelled.CancelReason.String)
	}
	if len(n.cancelled) != 1 {
		t.Errorf("cancel notifications = %d, want 1", len(n.cancelled))
	}

	// The cancelled state is absorbing.
	if _, err := s.Cancel(ctx, order.ID, "tekrar", ""); !errors.Is(err, ErrOrderCancelled) {
		t.Errorf("second cancel: err = %v, want ErrOrderCancelled", err)
	}
	if _, err := s.ChangeStatus(ctx, order.ID, model.OrderStatusPreparing); !errors.Is(err, ErrOrderCancelled) {
		t.Errorf("status change after cancel: err = %v, want ErrOrderCancelled", err)
	}
	if _, err := s.UpdateItems(ctx, order.ID, sampleDetails()); !errors.Is(err, ErrOrderCancelled) {
		t.Errorf("item edit after cancel: err = %v, want ErrOrderCancelled", err)
	}
}

func TestOrderService_Cancel_RequiresReason(t *testing.T) {
	s := NewOrderService(newTestDB(t), nil)
	ctx := context.Background()

	order, _ := s.Create(ctx, sampleDetails(), sql.NullInt64{})
	if _, err := s.Cancel(ctx, order.ID, "  ", ""); !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("err = %v, want ErrInvalidOrder", err)
	}
}

func TestOrderService_Cancel_FromCompleted(t *testing.T) {
	s := NewOrderService(newTestDB(t), nil)
	ctx := context.Background()

	order, _ := s.Create(ctx, sampleDetails(), sql.NullInt64{})
	if _, err := s.ChangeStatus(ctx, order.ID, model.OrderStatusCompleted); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Cancel(ctx, order.ID, "iade", ""); err != nil {
		t.Errorf("completed orders should still be cancellable, got %v", err)
	}
}

func TestOrderService_UpdateItems_DirtyCheck(t *testing.T) {
	s := NewOrderService(newTestDB(t), nil)
	ctx := context.Background()

	order, _ := s.Create(ctx, sampleDetails(), sql.NullInt64{})
	before := order.UpdatedAt

	// Identical items: no write happens.
	same, err := s.UpdateItems(ctx, order.ID, sampleDetails())
	if err != nil {
		t.Fatal(err)
	}
	if !same.UpdatedAt.Equal(before) {
		t.Error("unchanged items should not touch the row")
	}

	changed := sampleDetails()
	changed.Items[0].Amount = 5
	updated, err := s.UpdateItems(ctx, order.ID, changed)
	if err != nil {
		t.Fatal(err)
	}
	details, _ := updated.ParseDetails()
	if details.Items[0].Amount != 5 {
		t.Errorf("amount = %d, want 5", details.Items[0].Amount)
	}
}

func TestOrderService_NotFound(t *testing.T) {
	s := NewOrderService(newTestDB(t), nil)
	ctx := context.Background()

	if _, err := s.Get(ctx, 999); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("Get: err = %v, want ErrOrderNotFound", err)
	}
	if _, err := s.ChangeStatus(ctx, 999, model.OrderStatusPreparing); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("ChangeStatus: err = %v, want ErrOrderNotFound", err)
	}
	if _, err := s.Cancel(ctx, 999, "sebep", ""); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("Cancel: err = %v, want ErrOrderNotFound", err)
	}
}

func TestOrderService_List(t *testing.T) {
	s := NewOrderService(newTestDB(t), nil)
	ctx := context.Background()

	first, _ := s.Create(ctx, sampleDetails(), sql.NullInt64{})
	if _, err := s.Create(ctx, sampleDetails(), sql.NullInt64{}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Cancel(ctx, first.ID, "vazgeçildi", ""); err != nil {
		t.Fatal(err)
	}

	all, total, err := s.List(ctx, "", 50, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || len(all) != 2 {
		t.Errorf("all orders: len=%d total=%d, want 2/2", len(all), total)
	}

	pending, total, err := s.List(ctx, model.OrderStatusPending, 50, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(pending) != 1 {
		t.Errorf("pending orders: len=%d total=%d, want 1/1", len(pending), total)
	}

	if _, _, err := s.List(ctx, "kargoda", 50, 0); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("unknown status filter: err = %v, want ErrInvalidStatus", err)
	}
}
