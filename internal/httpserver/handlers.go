package httpserver

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
	"storefront/internal/view"
)

type handlers struct {
	products productService
	sessions sessionService
	logger   *log.Logger
}

type sessionResponse struct {
	Token     string           `json:"token"`
	ExpiresIn int              `json:"expiresIn"`
	Cart      view.CartSummary `json:"cart"`
}

type searchResponse struct {
	domain.CatalogPage
	Cards []view.CardState `json:"cards,omitempty"`
}

type cartResponse struct {
	Cart view.CartSummary `json:"cart"`
	Card *view.CardState  `json:"card,omitempty"`
}

func (h *handlers) createSession(c *gin.Context) {
	token, store, err := h.sessions.Issue()
	if err != nil {
		h.logger.Printf("session issue failed: err=%v", err)
		writeError(c, http.StatusInternalServerError, "could not create session")
		return
	}
	c.JSON(http.StatusCreated, sessionResponse{
		Token:     token,
		ExpiresIn: h.sessions.TTLSeconds(),
		Cart:      view.Summary(store.Snapshot()),
	})
}

func (h *handlers) searchProducts(c *gin.Context) {
	skip, err := queryInt(c, "skip")
	if err != nil {
		writeError(c, http.StatusBadRequest, "skip must be an integer")
		return
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		writeError(c, http.StatusBadRequest, "limit must be an integer")
		return
	}

	page, err := h.products.Search(c.Request.Context(), c.Query("q"), skip, limit)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPaging) {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Printf("catalog search failed: q=%q skip=%d limit=%d err=%v", c.Query("q"), skip, limit, err)
		writeError(c, http.StatusBadGateway, "catalog unavailable")
		return
	}

	resp := searchResponse{CatalogPage: page}
	if store := optionalCart(c, h.sessions); store != nil {
		resp.Cards = view.Cards(page.Products, store.Snapshot())
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handlers) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, cartResponse{Cart: view.Summary(cartFrom(c).Snapshot())})
}

func (h *handlers) addItem(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		writeError(c, http.StatusBadRequest, "invalid product payload")
		return
	}
	if product.ID <= 0 {
		writeError(c, http.StatusBadRequest, "product id is required")
		return
	}
	if product.Stock < 0 || product.Price.IsNegative() {
		writeError(c, http.StatusBadRequest, "price and stock must not be negative")
		return
	}

	store := cartFrom(c)
	added := store.UpdateCartIf(product, func(cart domain.Cart) bool {
		return view.CanAdd(product, cart)
	})
	if !added {
		writeError(c, http.StatusConflict, domain.ErrStockLimit.Error())
		return
	}

	cart := store.Snapshot()
	card := view.Card(product, cart)
	c.JSON(http.StatusOK, cartResponse{Cart: view.Summary(cart), Card: &card})
}

func (h *handlers) decrementItem(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}
	store := cartFrom(c)
	store.RemoveItemFromCart(id)
	c.JSON(http.StatusOK, cartResponse{Cart: view.Summary(store.Snapshot())})
}

func (h *handlers) removeItem(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}
	store := cartFrom(c)
	store.RemoveProduct(id)
	c.JSON(http.StatusOK, cartResponse{Cart: view.Summary(store.Snapshot())})
}

func (h *handlers) resetCart(c *gin.Context) {
	store := cartFrom(c)
	store.ResetState()
	c.JSON(http.StatusOK, cartResponse{Cart: view.Summary(store.Snapshot())})
}

// cartEvents streams the cart summary after every action until the client
// goes away. Slow clients drop intermediate events, the next one carries
// the full snapshot anyway.
func (h *handlers) cartEvents(c *gin.Context) {
	store := cartFrom(c)
	events := make(chan cartsvc.Event, 16)
	unsubscribe := store.Subscribe(func(ev cartsvc.Event) {
		select {
		case events <- ev:
		default:
		}
	})
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("snapshot", view.Summary(store.Snapshot()))
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(_ io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev := <-events:
			c.SSEvent(string(ev.Action), view.Summary(ev.Cart))
			return true
		}
	})
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func productIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "invalid product id")
		return 0, false
	}
	return id, true
}
