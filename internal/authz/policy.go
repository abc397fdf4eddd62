// Package authz holds the single ownership rule shared by the HTML and
// API front doors: safe methods always pass, unsafe methods require the
// requester to own the resource.
package authz

// Owned is implemented by every resource with a single owning user
// (Item, Comment, Profile).
type Owned interface {
	OwnerID() uint
}

// CanMutate reports whether the requester may change or delete the
// resource. Requester id 0 means anonymous and never passes. Read-class
// operations must not call this; they are allowed for everyone.
func CanMutate(requesterID uint, resource Owned) bool {
	if requesterID == 0 || resource == nil {
		return false
	}
	return resource.OwnerID() == requesterID
}
