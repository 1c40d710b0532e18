package accesscontrol

// Pure authorization predicates. They never touch the database: the caller's
// roles are resolved by the middleware and the resource fields are passed in.

// CanViewOrder reports whether the caller may read an order owned by ownerID.
// A nil ownerID means an anonymous guest cart, which only admins can inspect.
func CanViewOrder(c Caller, ownerID *int64) bool {
	if c.HasRole(RoleAdmin) {
		return true
	}
	return c.HasRole(RoleUser) && ownerID != nil && *ownerID == c.UserID
}

// CanListAllOrders reports whether the caller may list orders across all
// customers rather than just their own.
func CanListAllOrders(c Caller) bool {
	return c.HasRole(RoleAdmin)
}

// CanMutateProduct gates catalog create/update.
func CanMutateProduct(c Caller) bool {
	return c.HasRole(RoleAdmin)
}

// CanReapCarts gates the stale-cart cleanup.
func CanReapCarts(c Caller) bool {
	return c.HasRole(RoleAdmin)
}
