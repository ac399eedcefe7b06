package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ProductCatalog/pkg/kit"
)

const (
	basePath      = "/api/product"
	maxCreateBody = 1 << 20

	// Prices are written in plain notation; these bound their rendered length.
	maxPriceExponent = 64
	maxPriceDigits   = 64
)

var errPriceOutOfRange = errors.New("price out of range")

type Server struct {
	Store Store
	Log   *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Route(basePath, func(rr chi.Router) {
		rr.Get("/", s.list)
		rr.Post("/", s.create)
		rr.Get("/{id}", s.get)
	})

	return r
}

func (s *Server) list(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Store.List())
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	p, ok := s.Store.Get(id)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	in, err := decodeProduct(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	p := s.Store.Add(in)
	if s.Log != nil {
		s.Log.Info("product created",
			zap.Int64("id", p.ID),
			zap.String("name", p.Name),
			zap.Stringer("price", p.Price),
		)
	}

	w.Header().Set("Location", ProductPath(p.ID))
	kit.WriteJSON(w, http.StatusCreated, p)
}

func ProductPath(id int64) string {
	return basePath + "/" + strconv.FormatInt(id, 10)
}

func decodeProduct(w http.ResponseWriter, r *http.Request) (Product, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCreateBody)
	defer func() { _ = r.Body.Close() }()

	var p Product
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&p); err != nil {
		return Product{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return Product{}, errors.New("extra data after json object")
	}
	if err := checkPrice(p.Price); err != nil {
		return Product{}, err
	}
	return p, nil
}

func checkPrice(d decimal.Decimal) error {
	exp := d.Exponent()
	if exp < -maxPriceExponent || exp > maxPriceExponent || d.NumDigits() > maxPriceDigits {
		return fmt.Errorf("%w: exponent=%d digits=%d", errPriceOutOfRange, exp, d.NumDigits())
	}
	return nil
}
