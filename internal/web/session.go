package web

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"

	"github.com/littlelemon/tablebook/internal/order"
)

const (
	cartCookieName = "littlelemon_cart"
	cartMaxAge     = 7 * 24 * time.Hour
)

// CartStore keeps the cart in a signed, encrypted cookie so the server holds
// no per-visitor state.
type CartStore struct{ sc *securecookie.SecureCookie }

type cartCookie struct {
	Type  order.Type   `json:"t"`
	Lines []order.Line `json:"l"`
}

func NewCartStore(hashKey, blockKey []byte) *CartStore {
	sc := securecookie.New(hashKey, blockKey)
	sc.SetSerializer(securecookie.JSONEncoder{})
	sc.MaxAge(int(cartMaxAge.Seconds()))
	return &CartStore{sc: sc}
}

// Load returns the visitor's cart. A missing or tampered cookie yields an
// empty cart.
func (s *CartStore) Load(r *http.Request) *order.Cart {
	c, err := r.Cookie(cartCookieName)
	if err != nil {
		return order.NewCart()
	}
	var value cartCookie
	if err := s.sc.Decode(cartCookieName, c.Value, &value); err != nil {
		return order.NewCart()
	}
	return order.FromLines(value.Type, value.Lines)
}

func (s *CartStore) Save(w http.ResponseWriter, r *http.Request, cart *order.Cart) error {
	encoded, err := s.sc.Encode(cartCookieName, cartCookie{Type: cart.Type(), Lines: cart.Lines()})
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cartCookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
		MaxAge:   int(cartMaxAge.Seconds()),
	})
	return nil
}

func (s *CartStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cartCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
