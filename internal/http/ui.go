package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/catalogue"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/services"
	"github.com/mrlokans/bookshelf/internal/views"
)

// UIController serves the HTML screens: list, add, edit and detail.
type UIController struct {
	catalogue Catalogue
	sessions  *SessionManager
}

func NewUIController(cat Catalogue, sessions *SessionManager) *UIController {
	return &UIController{catalogue: cat, sessions: sessions}
}

// listQuery resolves the list query from the URL, falling back to what
// the session remembers. An explicit query is remembered for next time.
func (ui *UIController) listQuery(c *gin.Context) (catalogue.Query, error) {
	search, hasSearch := c.GetQuery("q")
	sortKey, hasSort := c.GetQuery("sort")

	if ui.sessions != nil && (!hasSearch || !hasSort) {
		savedSearch, savedSort := ui.sessions.ListQuery(c.Request)
		if !hasSearch {
			search = savedSearch
		}
		if !hasSort {
			sortKey = savedSort
		}
	}

	q, err := catalogue.NewQuery(search, sortKey)
	if err != nil {
		return catalogue.Query{Search: search, Sort: catalogue.DefaultSortOrder}, err
	}
	if ui.sessions != nil && (hasSearch || hasSort) {
		ui.sessions.RememberListQuery(c.Request, q)
	}
	return q, nil
}

// ListPage handles GET /
func (ui *UIController) ListPage(c *gin.Context) {
	q, err := ui.listQuery(c)
	if err != nil {
		ui.renderError(c, http.StatusBadRequest, err.Error())
		return
	}

	view := views.NewListView(ui.catalogue, q)
	snap, err := view.Refresh()
	if err != nil {
		ui.renderServiceError(c, err, "list page")
		return
	}

	c.HTML(http.StatusOK, "list", gin.H{
		"Snapshot":     snap,
		"Search":       q.Search,
		"Sort":         q.Sort,
		"SortOrders":   catalogue.SortOrders(),
		"EmptyTitle":   views.EmptyTitle,
		"EmptyMessage": views.EmptyMessage,
		"CSRFToken":    GetCSRFToken(c),
	})
}

// NewBookPage handles GET /books/new
func (ui *UIController) NewBookPage(c *gin.Context) {
	form := views.NewAddForm(ui.catalogue)
	ui.renderForm(c, http.StatusOK, formPage{
		Title:  "Add Book",
		Action: "/books",
		Submit: "Add",
		Cancel: "/",
		Input:  form.Input,
		Date:   form.Input.PublicationDate.Format(entities.DateLayout),
	})
}

// CreateBook handles POST /books
func (ui *UIController) CreateBook(c *gin.Context) {
	if c.PostForm("action") == "cancel" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	form := views.NewAddForm(ui.catalogue)
	page := formPage{Title: "Add Book", Action: "/books", Submit: "Add", Cancel: "/"}

	ui.submitForm(c, &form.Input, &page, form.Submit, func(*entities.Book) string { return "/" })
}

// BookPage handles GET /books/:id
func (ui *UIController) BookPage(c *gin.Context) {
	id, ok := ui.parseID(c)
	if !ok {
		return
	}

	detail, err := views.NewDetailView(ui.catalogue, id)
	if err != nil {
		ui.renderServiceError(c, err, "detail page")
		return
	}

	c.HTML(http.StatusOK, "detail", gin.H{
		"Book":      detail.Book,
		"Fields":    detail.Fields(),
		"CSRFToken": GetCSRFToken(c),
	})
}

// EditBookPage handles GET /books/:id/edit
func (ui *UIController) EditBookPage(c *gin.Context) {
	id, ok := ui.parseID(c)
	if !ok {
		return
	}

	detail, err := views.NewDetailView(ui.catalogue, id)
	if err != nil {
		ui.renderServiceError(c, err, "edit page")
		return
	}

	form := detail.EditForm()
	ui.renderForm(c, http.StatusOK, editPage(id, form.Input))
}

// UpdateBook handles POST /books/:id
func (ui *UIController) UpdateBook(c *gin.Context) {
	id, ok := ui.parseID(c)
	if !ok {
		return
	}
	if c.PostForm("action") == "cancel" {
		c.Redirect(http.StatusSeeOther, fmt.Sprintf("/books/%d", id))
		return
	}

	book, err := ui.catalogue.Get(id)
	if err != nil {
		ui.renderServiceError(c, err, "update book")
		return
	}

	form := views.NewEditForm(ui.catalogue, book)
	page := editPage(id, form.Input)

	ui.submitForm(c, &form.Input, &page, form.Submit, func(b *entities.Book) string {
		return fmt.Sprintf("/books/%d", b.ID)
	})
}

// DeleteBook handles POST /books/:id/delete
func (ui *UIController) DeleteBook(c *gin.Context) {
	id, ok := ui.parseID(c)
	if !ok {
		return
	}

	if _, err := ui.catalogue.Delete(id); err != nil {
		ui.renderServiceError(c, err, "delete book")
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// DeleteRow handles POST /rows/:index/delete. The index refers to the list
// as the browser last saw it, derived from the remembered query.
func (ui *UIController) DeleteRow(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		ui.renderError(c, http.StatusBadRequest, "Invalid row")
		return
	}

	q, err := ui.listQuery(c)
	if err != nil {
		ui.renderError(c, http.StatusBadRequest, err.Error())
		return
	}

	view := views.NewListView(ui.catalogue, q)
	if _, err := view.Refresh(); err != nil {
		ui.renderServiceError(c, err, "delete row")
		return
	}
	if _, err := view.DeleteAt(index); err != nil {
		ui.renderServiceError(c, err, "delete row")
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

type formPage struct {
	Title  string
	Action string
	Submit string
	Cancel string
	Input  services.BookInput
	Errors map[string]string

	// Date is the date field as shown, which after a failed submit is the
	// text that was posted.
	Date string
}

func editPage(id uint, input services.BookInput) formPage {
	return formPage{
		Title:  "Edit Book",
		Action: fmt.Sprintf("/books/%d", id),
		Submit: "Save",
		Cancel: fmt.Sprintf("/books/%d", id),
		Input:  input,
		Date:   input.PublicationDate.Format(entities.DateLayout),
	}
}

// submitForm binds the posted fields into input, submits, and either
// redirects or re-renders the form with the field errors.
func (ui *UIController) submitForm(
	c *gin.Context,
	input *services.BookInput,
	page *formPage,
	submit func() (*entities.Book, error),
	next func(*entities.Book) string,
) {
	var req BookRequest
	if err := c.ShouldBind(&req); err != nil {
		ui.renderError(c, http.StatusBadRequest, "Invalid form")
		return
	}

	parsed, parseErrors := req.toInput()
	*input = parsed
	page.Input = parsed
	page.Date = strings.TrimSpace(req.PublicationDate)

	if fields := submitErrors(parsed, parseErrors); fields != nil {
		page.Errors = fields
		ui.renderForm(c, http.StatusUnprocessableEntity, *page)
		return
	}

	book, err := submit()
	if err != nil {
		if fields := views.FieldErrors(err); fields != nil {
			page.Errors = fields
			ui.renderForm(c, http.StatusUnprocessableEntity, *page)
			return
		}
		ui.renderServiceError(c, err, page.Title)
		return
	}

	c.Redirect(http.StatusSeeOther, next(book))
}

func (ui *UIController) renderForm(c *gin.Context, status int, page formPage) {
	c.HTML(status, "form", gin.H{
		"Page":      page,
		"Date":      page.Date,
		"Genres":    entities.AllGenres(),
		"CSRFToken": GetCSRFToken(c),
	})
}

func (ui *UIController) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		ui.renderError(c, http.StatusBadRequest, "Invalid book ID")
		return 0, false
	}
	return uint(id), true
}

func (ui *UIController) renderServiceError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		ui.renderError(c, http.StatusNotFound, "Book not found")
	default:
		logInternalError(err, context)
		ui.renderError(c, http.StatusInternalServerError, "Something went wrong while talking to the database. Nothing was changed.")
	}
}

func (ui *UIController) renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error", gin.H{"Error": message})
}
