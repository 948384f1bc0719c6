package services

import (
	"errors"
	"fmt"

	"github.com/ar363/restaurant-live-ordering/entity"
	"github.com/ar363/restaurant-live-ordering/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService struct {
	DB        *gorm.DB
	Repo      *repository.OrderRepository
	MenuRepo  *repository.MenuRepository
	TableRepo *repository.TableRepository
	Bus       Broadcaster
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	menuRepo *repository.MenuRepository,
	tableRepo *repository.TableRepository,
	bus Broadcaster,
) *OrderService {
	return &OrderService{DB: db, Repo: repo, MenuRepo: menuRepo, TableRepo: tableRepo, Bus: bus}
}

// ----- DTOs from Controller -----

type OrderItemIn struct {
	MenuItemID          uint   `json:"menuItemId" binding:"required"`
	Quantity            int    `json:"quantity" binding:"min=1"`
	SpecialInstructions string `json:"specialInstructions"`
}

type CreateOrderReq struct {
	TableNumber         int           `json:"tableNumber" binding:"required"`
	PaymentMethod       string        `json:"paymentMethod" binding:"required"`
	SpecialInstructions string        `json:"specialInstructions"`
	Items               []OrderItemIn `json:"items" binding:"required"`
}

// Create สั่งตรงไม่ผ่านตะกร้า — จับราคาเมนูปัจจุบันเป็น captured price
func (s *OrderService) Create(userID uint, req *CreateOrderReq) (*OrderView, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items is required", ErrValidation)
	}
	if !entity.IsValidPaymentMethod(req.PaymentMethod) {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, req.PaymentMethod)
	}

	total := decimal.Zero
	lines := make([]entity.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
		}
		m, err := s.MenuRepo.GetByID(it.MenuItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: menu item %d", ErrNotFound, it.MenuItemID)
			}
			return nil, err
		}
		total = total.Add(m.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		lines = append(lines, entity.OrderItem{
			MenuItemID:          m.ID,
			Quantity:            it.Quantity,
			PriceAtOrder:        m.Price,
			SpecialInstructions: it.SpecialInstructions,
		})
	}

	var order entity.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		table, err := s.TableRepo.GetOrCreateByNumber(tx, req.TableNumber)
		if err != nil {
			return err
		}
		order = entity.Order{
			UserID:              userID,
			TableID:             &table.ID,
			Status:              entity.StatusPending,
			PaymentMethod:       req.PaymentMethod,
			PaymentStatus:       entity.IsPrepaid(req.PaymentMethod),
			TotalAmount:         total,
			SpecialInstructions: req.SpecialInstructions,
			Items:               lines,
		}
		return s.Repo.CreateOrder(tx, &order)
	})
	if err != nil {
		return nil, err
	}

	full, err := s.Repo.GetOrderWithItems(order.ID)
	if err != nil {
		full = &order
	}
	view := NewOrderView(full)
	s.Bus.Publish(KitchenGroup, NewOrderEvent{Type: "new_order", Order: view})
	return &view, nil
}

// ----- List & Detail -----

// List: staff เห็นทุกออเดอร์ ลูกค้าเห็นของตัวเอง
func (s *OrderService) List(userID uint, role string, status string) ([]OrderView, error) {
	var (
		orders []entity.Order
		err    error
	)
	if entity.IsStaffRole(role) {
		orders, err = s.Repo.ListAll(status)
	} else {
		orders, err = s.Repo.ListForUser(userID)
	}
	if err != nil {
		return nil, err
	}
	return toViews(orders), nil
}

func (s *OrderService) Detail(userID uint, role string, orderID uint) (*OrderView, error) {
	o, err := s.Repo.GetOrderWithItems(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}
	if !entity.IsStaffRole(role) && o.UserID != userID {
		return nil, ErrForbidden
	}
	view := NewOrderView(o)
	return &view, nil
}

// ActiveOrders = ทุกออเดอร์ที่ยังไม่ completed/cancelled ใหม่สุดก่อน (จอครัว)
func (s *OrderService) ActiveOrders() ([]OrderView, error) {
	orders, err := s.Repo.ListActive()
	if err != nil {
		return nil, err
	}
	return toViews(orders), nil
}

type KitchenDashboard struct {
	Orders       []OrderView      `json:"orders"`
	StatusCounts map[string]int64 `json:"statusCounts"`
}

func (s *OrderService) Dashboard() (*KitchenDashboard, error) {
	orders, err := s.ActiveOrders()
	if err != nil {
		return nil, err
	}
	counts, err := s.Repo.CountByStatus()
	if err != nil {
		return nil, err
	}
	return &KitchenDashboard{Orders: orders, StatusCounts: counts}, nil
}

func toViews(orders []entity.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, NewOrderView(&orders[i]))
	}
	return views
}
