// Package nav decides, for an identity and a requested area of the app,
// whether to render the area or redirect elsewhere. The decision is a pure
// function with no hidden state: it is evaluated on every request at the
// routing boundary, and nowhere else.
package nav

import "github.com/Gongwasubash/restro/internal/domain"

// State is the role-derived navigation state. It changes only through
// login (Anonymous to Customer or Admin) and logout (anything to
// Anonymous); there is no Customer/Admin crossover without a fresh login.
type State int

const (
	Anonymous State = iota
	Customer
	Admin
)

// StateOf derives the navigation state from the current identity; nil
// means no identity is present.
func StateOf(identity *domain.User) State {
	switch {
	case identity == nil:
		return Anonymous
	case identity.Role == domain.RoleAdmin:
		return Admin
	default:
		return Customer
	}
}

// Area names the logical destinations of the app.
type Area string

const (
	AreaHome     Area = "home"
	AreaMenu     Area = "menu"
	AreaCart     Area = "cart"
	AreaCheckout Area = "checkout"
	AreaOrders   Area = "orders"
	AreaAdmin    Area = "admin"
	AreaLogin    Area = "login"
)

const (
	PathHome  = "/"
	PathLogin = "/login"
	PathAdmin = "/admin"
)

// Decision is either "render" or "redirect to RedirectTo".
type Decision struct {
	Allow      bool
	RedirectTo string
}

func render() Decision { return Decision{Allow: true} }
func redirect(to string) Decision { return Decision{RedirectTo: to} }

// Decide evaluates the route-access policy. Idempotent and side-effect
// free, so it is safe to re-run on every request.
func Decide(identity *domain.User, area Area) Decision {
	state := StateOf(identity)

	switch area {
	case AreaHome, AreaMenu, AreaCart:
		// Public, including the cart view; submitting the cart is
		// AreaCheckout and gated separately.
		return render()

	case AreaCheckout, AreaOrders:
		if state == Anonymous {
			return redirect(PathLogin)
		}
		return render()

	case AreaAdmin:
		if state != Admin {
			return redirect(PathLogin)
		}
		return render()

	case AreaLogin:
		switch state {
		case Admin:
			return redirect(PathAdmin)
		case Customer:
			return redirect(PathHome)
		default:
			return render()
		}
	}

	// Unknown destinations fall back to home, like the catch-all route.
	return redirect(PathHome)
}
