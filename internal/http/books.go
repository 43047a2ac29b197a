package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/catalogue"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/services"
)

// Catalogue is what the HTTP layer needs from the catalogue service.
type Catalogue interface {
	Create(input services.BookInput) (*entities.Book, error)
	Update(id uint, input services.BookInput) (*entities.Book, error)
	Delete(id uint) (*entities.Book, error)
	Get(id uint) (*entities.Book, error)
	Query(q catalogue.Query) ([]entities.Book, error)
}

type BooksController struct {
	catalogue Catalogue
}

func NewBooksController(cat Catalogue) *BooksController {
	return &BooksController{catalogue: cat}
}

// ListBooks handles GET /api/books?q=&sort=
func (bc *BooksController) ListBooks(c *gin.Context) {
	q, err := catalogue.NewQuery(c.Query("q"), c.Query("sort"))
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	books, err := bc.catalogue.Query(q)
	if err != nil {
		respondServiceError(c, err, "list books")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"books": toBookResponses(books),
		"count": len(books),
		"query": gin.H{"q": q.Search, "sort": q.Sort.Key()},
	})
}

// GetBook handles GET /api/books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.catalogue.Get(id)
	if err != nil {
		respondServiceError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, toBookResponse(book))
}

// CreateBook handles POST /api/books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	input, parseErrors := req.toInput()
	if fields := submitErrors(input, parseErrors); fields != nil {
		respondValidationError(c, fields)
		return
	}

	book, err := bc.catalogue.Create(input)
	if err != nil {
		respondServiceError(c, err, "create book")
		return
	}
	respondCreated(c, toBookResponse(book))
}

// UpdateBook handles PUT /api/books/:id
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	input, parseErrors := req.toInput()
	if fields := submitErrors(input, parseErrors); fields != nil {
		respondValidationError(c, fields)
		return
	}

	book, err := bc.catalogue.Update(id, input)
	if err != nil {
		respondServiceError(c, err, "update book")
		return
	}
	c.JSON(http.StatusOK, toBookResponse(book))
}

// DeleteBook handles DELETE /api/books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := bc.catalogue.Delete(id); err != nil {
		respondServiceError(c, err, "delete book")
		return
	}
	respondSuccess(c, "book deleted")
}

// ListGenres handles GET /api/genres
func (bc *BooksController) ListGenres(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"genres":  entities.AllGenres(),
		"default": entities.DefaultGenre,
	})
}

type sortOrderInfo struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// ListSortOrders handles GET /api/sort-orders
func (bc *BooksController) ListSortOrders(c *gin.Context) {
	orders := catalogue.SortOrders()
	out := make([]sortOrderInfo, len(orders))
	for i, o := range orders {
		out[i] = sortOrderInfo{Key: o.Key(), Label: o.Label()}
	}
	c.JSON(http.StatusOK, gin.H{
		"sort_orders": out,
		"default":     catalogue.DefaultSortOrder.Key(),
	})
}
