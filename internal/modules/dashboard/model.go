package dashboard

import (
	"time"

	"github.com/davidrojas/tienda-backend/internal/modules/catalog"
	"github.com/davidrojas/tienda-backend/internal/modules/user"
)

// Metrics are the aggregate counters on the administrator dashboard.
type Metrics struct {
	Users    int64   `json:"users"`
	Products int64   `json:"products"`
	Sales    int64   `json:"sales"`
	Revenue  float64 `json:"revenue"`
}

// SaleSummary is one sale with its customer name, newest first.
type SaleSummary struct {
	ID       int64     `json:"id"`
	Customer string    `json:"customer"`
	Date     time.Time `json:"date"`
	Total    float64   `json:"total"`
}

// Purchase is one of a client's own sales with a short product summary.
type Purchase struct {
	ID      int64     `json:"id"`
	Date    time.Time `json:"date"`
	Total   float64   `json:"total"`
	Summary string    `json:"summary"`
}

// AdminView is the administrator dashboard payload.
type AdminView struct {
	Metrics  Metrics            `json:"metrics"`
	Users    []*user.User       `json:"users"`
	Products []*catalog.Product `json:"products"`
	Sales    []SaleSummary      `json:"sales"`
}

// EmployeeView is the employee dashboard payload.
type EmployeeView struct {
	Products []*catalog.Product `json:"products"`
	Sales    []SaleSummary      `json:"sales"`
}

// ClientView is the client dashboard payload.
type ClientView struct {
	Purchases []Purchase `json:"purchases"`
}

// View is the role-branched dashboard response; exactly one of the role
// fields is set.
type View struct {
	Role     string        `json:"role"`
	Admin    *AdminView    `json:"admin,omitempty"`
	Employee *EmployeeView `json:"employee,omitempty"`
	Client   *ClientView   `json:"client,omitempty"`
}
