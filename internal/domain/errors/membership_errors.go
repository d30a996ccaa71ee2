package errors

import "errors"

var (
	// ErrAlreadyMember indicates a membership already exists for the user/club
	// pair. Clients render this as "already joined", not as a failure, so it
	// must stay distinguishable from generic errors.
	ErrAlreadyMember = errors.New("already a member of this club")

	// ErrMembershipNotFound indicates the user is not a member of the club
	ErrMembershipNotFound = errors.New("not a member of this club")

	// ErrDeleteNotEffective indicates a membership row still exists after a
	// reported-successful delete, which points at a storage-layer inconsistency.
	ErrDeleteNotEffective = errors.New("membership delete did not take effect")
)
