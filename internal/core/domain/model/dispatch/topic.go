package dispatch

import (
	"fmt"

	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/pkg/errs"
)

// Topic is what a subscription listens to: one order, or one role-wide feed.
// Topics are comparable and usable as map keys.
type Topic struct {
	orderID kernel.UUID
	role    Role
}

func OrderTopic(orderID kernel.UUID) (Topic, error) {
	if err := orderID.Validate(); err != nil {
		return Topic{}, err
	}
	return Topic{orderID: orderID}, nil
}

// RoleTopic is the wildcard feed of a role. Customers observe orders one by one
// and get an error here.
func RoleTopic(role Role) (Topic, error) {
	if !role.HasFeed() {
		return Topic{}, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%s has no role-wide feed", role))
	}
	return Topic{role: role}, nil
}

func (t Topic) IsRoleFeed() bool {
	return t.role != RoleUnknown
}

func (t Topic) Role() Role {
	return t.role
}

func (t Topic) OrderID() kernel.UUID {
	return t.orderID
}

func (t Topic) IsZero() bool {
	return t.role == RoleUnknown && t.orderID.IsZero()
}

func (t Topic) String() string {
	if t.IsRoleFeed() {
		return "role:" + t.role.String()
	}
	return "order:" + t.orderID.String()
}
