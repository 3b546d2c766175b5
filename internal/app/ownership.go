package app

// Owned is implemented by any resource with a single owning user. Users own
// themselves, posts are owned by their author.
type Owned interface {
	OwnerID() uint
}

// authorize is the single ownership guard behind every read-sensitive and
// mutating endpoint. It assumes the resource has already been found: a
// missing resource must surface as ErrNotFound before ownership is compared.
func authorize(principalID uint, resource Owned) error {
	if principalID == 0 || resource == nil {
		return ErrForbidden
	}
	if resource.OwnerID() != principalID {
		return ErrForbidden
	}
	return nil
}
