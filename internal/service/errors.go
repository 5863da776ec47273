package service

import "errors"

var (
	// ErrEmailNotRegistered indicates a login attempt for an unknown email.
	ErrEmailNotRegistered = errors.New("email not registered")
	// ErrWrongPassword indicates a password that does not match the stored hash.
	ErrWrongPassword = errors.New("wrong password")
	// ErrEmailTaken is returned when registering with an existing email.
	ErrEmailTaken = errors.New("email already taken")
	// ErrWeakPassword indicates a registration password failing the policy:
	// at least 8 characters with lower case, upper case and a digit.
	ErrWeakPassword = errors.New("password does not meet policy")
	// ErrNotLoggedIn indicates a request carrying no session token.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrUserNotFound indicates a valid token whose backing record is gone,
	// or an operation against a missing user.
	ErrUserNotFound = errors.New("user not found")
	// ErrMissingFields indicates a request without the required inputs.
	ErrMissingFields = errors.New("missing required fields")
	// ErrNotInWishlist indicates a removal for a property id that is not in
	// the wishlist (or a missing user).
	ErrNotInWishlist = errors.New("property not in wishlist")
	// ErrPropertyNotFound indicates an operation against a missing property.
	ErrPropertyNotFound = errors.New("property not found")
	// ErrBlogNotFound indicates an operation against a missing blog post.
	ErrBlogNotFound = errors.New("blog not found")
)
