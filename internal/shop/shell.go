// Package shop is a line-oriented storefront: it browses the catalog with
// the same feed and search debounce as the web home page and keeps one
// cart store in process.
package shop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"storefront/internal/browse"
	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
	"storefront/internal/view"
)

const helpText = `commands:
  search <text>  filter the catalog (empty text lists everything)
  more           load the next page
  list           show loaded products
  add <id>       add one of a loaded product
  dec <id>       remove one
  rm <id>        remove the product from the cart
  cart           show the cart
  reset          empty the cart
  quit`

// Shell reads commands and writes screens. Search commands are debounced;
// any other command first waits for a pending search to finish.
type Shell struct {
	feed     *browse.Feed
	store    *cartsvc.Store
	debounce *browse.Debouncer
	out      io.Writer
	logger   *log.Logger

	mu        sync.Mutex
	settled   *sync.Cond
	ctx       context.Context
	pending   string
	requested int
	completed int
}

func New(searcher browse.Searcher, pageSize int, store *cartsvc.Store, debounce time.Duration, out io.Writer, logger *log.Logger) *Shell {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Shell{
		feed:     browse.NewFeed(searcher, pageSize),
		store:    store,
		debounce: browse.NewDebouncer(debounce),
		out:      out,
		logger:   logger,
		ctx:      context.Background(),
	}
	s.settled = sync.NewCond(&s.mu)
	return s
}

// Run loads the first page and then executes commands from in until quit,
// EOF or ctx is done.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	s.mu.Lock()
	s.ctx = ctx
	s.requested++
	s.searchLocked(s.requested)
	s.mu.Unlock()

	scanner := bufio.NewScanner(in)
	for {
		s.prompt()
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if quit := s.Exec(scanner.Text()); quit {
			return nil
		}
	}
	s.mu.Lock()
	s.settleLocked()
	s.mu.Unlock()
	return scanner.Err()
}

// Exec runs one command line. It reports whether the shell should exit.
func (s *Shell) Exec(line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	if cmd == "search" {
		s.mu.Lock()
		s.requested++
		gen := s.requested
		s.pending = arg
		s.mu.Unlock()
		s.debounce.Call(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.searchLocked(gen)
		})
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settleLocked()

	switch cmd {
	case "":
	case "more":
		s.more()
	case "list":
		s.list()
	case "add":
		s.withID(arg, s.add)
	case "dec":
		s.withID(arg, func(id int64) {
			s.store.RemoveItemFromCart(id)
			s.cart()
		})
	case "rm":
		s.withID(arg, func(id int64) {
			s.store.RemoveProduct(id)
			s.cart()
		})
	case "cart":
		s.cart()
	case "reset":
		s.store.ResetState()
		s.cart()
	case "quit", "exit":
		s.debounce.Stop()
		return true
	case "help":
		fmt.Fprintln(s.out, helpText)
	default:
		fmt.Fprintf(s.out, "unknown command %q, try help\n", cmd)
	}
	return false
}

// settleLocked runs a search still waiting on the debounce delay, or waits
// for one already running.
func (s *Shell) settleLocked() {
	if s.debounce.Stop() {
		s.searchLocked(s.requested)
	}
	for s.completed < s.requested {
		s.settled.Wait()
	}
}

func (s *Shell) searchLocked(gen int) {
	if gen != s.requested || gen <= s.completed {
		return
	}
	defer func() {
		s.completed = gen
		s.settled.Broadcast()
	}()

	s.feed.SetQuery(s.pending)
	if _, err := s.feed.Load(s.ctx); err != nil {
		s.logger.Printf("search failed: q=%q err=%v", s.pending, err)
		fmt.Fprintf(s.out, "search failed: %v\n", err)
		return
	}
	s.list()
}

func (s *Shell) more() {
	fetched, err := s.feed.More(s.ctx)
	if err != nil {
		s.logger.Printf("load more failed: q=%q err=%v", s.feed.Query(), err)
		fmt.Fprintf(s.out, "load more failed: %v\n", err)
		return
	}
	if !fetched {
		fmt.Fprintln(s.out, "no more products")
		return
	}
	s.list()
}

func (s *Shell) list() {
	products := s.feed.Products()
	if len(products) == 0 {
		fmt.Fprintln(s.out, "no products found")
		return
	}
	cart := s.store.Snapshot()
	for _, card := range view.Cards(products, cart) {
		fmt.Fprintln(s.out, formatCard(card))
	}
	fmt.Fprintf(s.out, "showing %d of %d\n", len(products), s.feed.Total())
}

func (s *Shell) add(id int64) {
	product, ok := s.loaded(id)
	if !ok {
		fmt.Fprintf(s.out, "product %d is not in the listing\n", id)
		return
	}
	added := s.store.UpdateCartIf(product, func(cart domain.Cart) bool {
		return view.CanAdd(product, cart)
	})
	if !added {
		fmt.Fprintf(s.out, "%s: %s\n", product.Title, domain.ErrStockLimit)
		return
	}
	fmt.Fprintln(s.out, formatCard(view.Card(product, s.store.Snapshot())))
}

func (s *Shell) cart() {
	summary := view.Summary(s.store.Snapshot())
	if summary.Empty {
		fmt.Fprintln(s.out, summary.Message)
		return
	}
	for _, line := range summary.Lines {
		fmt.Fprintf(s.out, "%4d  %-32s %3d x %-9s %s\n", line.ProductID, line.Title, line.Quantity, line.Price, line.Subtotal)
	}
	fmt.Fprintf(s.out, "items: %d  total: $%s\n", summary.TotalQuantity, summary.Total)
}

func (s *Shell) loaded(id int64) (domain.Product, bool) {
	for _, p := range s.feed.Products() {
		if p.ID == id {
			return p, true
		}
	}
	// products already in the cart can be added again after the listing changed
	if line, ok := s.store.Snapshot().Line(id); ok {
		return line.Product, true
	}
	return domain.Product{}, false
}

func (s *Shell) withID(arg string, fn func(int64)) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintf(s.out, "invalid product id %q\n", arg)
		return
	}
	fn(id)
}

func (s *Shell) prompt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.out, "> ")
}

func formatCard(card view.CardState) string {
	label := card.AddLabel
	if card.AddDisabled {
		label += " (limit)"
	}
	return fmt.Sprintf("%4d  %-32s %-9s stock=%-3d [%s]", card.ProductID, card.Title, card.Price, card.Stock, label)
}
