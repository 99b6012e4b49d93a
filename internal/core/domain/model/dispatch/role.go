package dispatch

import (
	"fmt"
	"strings"

	"printdelivery/internal/core/domain/model/order"
	"printdelivery/internal/pkg/errs"
)

// Role is the kind of actor observing orders.
type Role int

const (
	RoleUnknown Role = iota
	RoleCustomer
	RoleStaff
	RoleDriver
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleCustomer: "customer",
	RoleStaff:    "staff",
	RoleDriver:   "driver",
	RoleAdmin:    "admin",
}

func ParseRole(name string) (Role, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for r, rn := range roleNames {
		if rn == n {
			return r, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a role", name))
}

func (r Role) String() string {
	if n, ok := roleNames[r]; ok {
		return n
	}
	return "unknown"
}

// driverFeedStatuses are the statuses drivers need to hear about across all orders:
// jobs becoming available, taken, or withdrawn.
var driverFeedStatuses = map[order.Status]struct{}{
	order.StatusReadyDelivery:  {},
	order.StatusDriverAssigned: {},
	order.StatusCancelled:      {},
}

// Interested reports whether the role-wide feed of r carries ev.
// Customers have no role-wide feed.
func (r Role) Interested(ev Event) bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleStaff:
		return ev.IsStatusChange()
	case RoleDriver:
		if !ev.IsStatusChange() {
			return false
		}
		_, ok := driverFeedStatuses[ev.Status]
		return ok
	default:
		return false
	}
}

// HasFeed reports whether r may subscribe to a role-wide feed.
func (r Role) HasFeed() bool {
	return r == RoleStaff || r == RoleDriver || r == RoleAdmin
}
