package web

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"inventory-catalog/internal/domain"
	"inventory-catalog/internal/forms"
	"inventory-catalog/internal/service"
	"inventory-catalog/internal/store"
)

// Memory limit for multipart item forms; larger file parts spill to disk.
const maxUploadMemory = 10 << 20

// Handler holds dependencies for the HTML command surface.
type Handler struct {
	categories *service.CategoryService
	items      *service.ItemService
	dashboard  *service.Dashboard
	renderer   Renderer
	logger     *log.Logger
}

// NewHandler creates a Handler with its dependencies.
func NewHandler(cs *service.CategoryService, is *service.ItemService, d *service.Dashboard, r Renderer, logger *log.Logger) *Handler {
	return &Handler{categories: cs, items: is, dashboard: d, renderer: r, logger: logger}
}

// --- View models ---

type indexView struct {
	Title  string
	Counts *service.Counts
}

type categoryListView struct {
	Title      string
	Categories []domain.Category
}

type categoryDetailView struct {
	Title    string
	Category *domain.Category
	Items    []domain.Item
}

type categoryFormView struct {
	Title  string
	Action string
	Form   forms.CategoryForm
	Errors []forms.FieldError
}

type itemListView struct {
	Title string
	Items []domain.Item
}

type itemDetailView struct {
	Title    string
	Item     *domain.Item
	Category *domain.Category
}

type itemFormPage struct {
	Title  string
	Action string
	View   *service.ItemFormView
}

type itemDeleteView struct {
	Title string
	Item  *domain.Item
}

type errorView struct {
	Title   string
	Message string
}

// --- Helpers ---

func (h *Handler) renderNotFound(w http.ResponseWriter, message string) {
	h.renderer.Render(w, http.StatusNotFound, "error", errorView{Title: "Not Found", Message: message})
}

func (h *Handler) renderBadRequest(w http.ResponseWriter, message string) {
	h.renderer.Render(w, http.StatusBadRequest, "error", errorView{Title: "Bad Request", Message: message})
}

func (h *Handler) renderServerError(w http.ResponseWriter, op string, err error) {
	h.logger.Printf("ERROR: %s failed: %v", op, err)
	h.renderer.Render(w, http.StatusInternalServerError, "error", errorView{
		Title:   "Something went wrong",
		Message: "The operation could not be completed. Please try again later.",
	})
}

// objectID parses the :id route parameter. A malformed id is handled the
// same as a missing record.
func objectID(r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	return id, err == nil
}

// uploadedImage returns the optional "image" file part of a multipart form.
func uploadedImage(r *http.Request) *multipart.FileHeader {
	if r.MultipartForm == nil || len(r.MultipartForm.File["image"]) == 0 {
		return nil
	}
	return r.MultipartForm.File["image"][0]
}

// --- Dashboard ---

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	counts, err := h.dashboard.Counts(r.Context())
	if err != nil {
		h.renderServerError(w, "Index counts", err)
		return
	}
	h.renderer.Render(w, http.StatusOK, "index", indexView{Title: "Shopping App Inventory", Counts: counts})
}

// --- Category handlers ---

func (h *Handler) CategoryList(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		h.renderServerError(w, "CategoryList", err)
		return
	}
	h.renderer.Render(w, http.StatusOK, "category_list", categoryListView{Title: "Categories", Categories: categories})
}

func (h *Handler) CategoryDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(r)
	if !ok {
		h.renderNotFound(w, "Category not found")
		return
	}
	detail, err := h.categories.GetWithItems(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			h.renderNotFound(w, "Category not found")
		} else {
			h.renderServerError(w, "CategoryDetail", err)
		}
		return
	}
	h.renderer.Render(w, http.StatusOK, "category_detail", categoryDetailView{
		Title:    detail.Category.Name,
		Category: detail.Category,
		Items:    detail.Items,
	})
}

func (h *Handler) CategoryCreateGet(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "category_form", categoryFormView{
		Title:  "Create Category",
		Action: "/category/category_form",
	})
}

func (h *Handler) CategoryCreatePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderBadRequest(w, "Malformed form submission")
		return
	}
	form := forms.ParseCategory(r.PostForm)
	location, fieldErrs, err := h.categories.Create(r.Context(), &form)
	if err != nil {
		h.renderServerError(w, "CategoryCreatePost", err)
		return
	}
	if len(fieldErrs) > 0 {
		h.renderer.Render(w, http.StatusOK, "category_form", categoryFormView{
			Title:  "Create Category",
			Action: "/category/category_form",
			Form:   form,
			Errors: fieldErrs,
		})
		return
	}
	http.Redirect(w, r, location, http.StatusFound)
}

func (h *Handler) CategoryUpdateGet(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(r)
	if !ok {
		h.renderNotFound(w, "Category not found")
		return
	}
	category, err := h.categories.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			h.renderNotFound(w, "Category not found")
		} else {
			h.renderServerError(w, "CategoryUpdateGet", err)
		}
		return
	}
	h.renderer.Render(w, http.StatusOK, "category_form", categoryFormView{
		Title:  "Update Category",
		Action: category.URL() + "/update",
		Form:   forms.CategoryForm{Name: category.Name, Description: category.Description},
	})
}

func (h *Handler) CategoryUpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(r)
	if !ok {
		h.renderNotFound(w, "Category not found")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderBadRequest(w, "Malformed form submission")
		return
	}
	form := forms.ParseCategory(r.PostForm)
	location, fieldErrs, err := h.categories.Update(r.Context(), id, &form)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			h.renderNotFound(w, "Category not found")
		} else {
			h.renderServerError(w, "CategoryUpdatePost", err)
		}
		return
	}
	if len(fieldErrs) > 0 {
		h.renderer.Render(w, http.StatusOK, "category_form", categoryFormView{
			Title:  "Update Category",
			Action: "/category/" + id.Hex() + "/update",
			Form:   form,
			Errors: fieldErrs,
		})
		return
	}
	http.Redirect(w, r, location, http.StatusFound)
}

func (h *Handler) CategoryDeleteGet(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(r)
	if !ok {
		h.renderNotFound(w, "Category not found")
		return
	}
	detail, err := h.categories.GetWithItems(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			h.renderNotFound(w, "Category not found")
		} else {
			h.renderServerError(w, "CategoryDeleteGet", err)
		}
		return
	}
	h.renderer.Render(w, http.StatusOK, "category_delete", categoryDetailView{
		Title:    "Delete Category",
		Category: detail.Category,
		Items:    detail.Items,
	})
}

func (h *Handler) CategoryDeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(r)
	if !ok {
		h.renderNotFound(w, "Category not found")
		return
	}
	blocked, err := h.categories.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			h.renderNotFound(w, "Category not found")
		} else {
			h.renderServerError(w, "CategoryDeletePost", err)
		}
		return
	}
	if blocked != nil {
		h.renderer.Render(w, http.StatusOK, "category_delete", categoryDetailView{
			Title:    "Delete Category",
			Category: blocked.Category,
			Items:    blocked.Items,
		})
		return
	}
	http.Redirect(w, r, "/category", http.StatusFound)
}

// --- Item handlers ---

func (h *Handler) ItemList(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(r.Context())
	if err != nil {
		h.renderServerError(w, "ItemList", err)
		return
	}
	h.renderer.Render(w, http.StatusOK, "item_list", itemListView{Title: "All Items", Items: items})
}

func (h *Handler) ItemDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(r)
	if !ok {
		h.renderNotFound(w, "Item not found")
		return
	}
	detail, err := h.items.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			h.renderNotFound(w, "Item not found")
		} else {
			h.renderServerError(w, "ItemDetail", err)
		}
		return
	}
	h.renderer.Render(w, http.StatusOK, "item_detail", itemDetailView{
		Title:    detail.Item.Name,
		Item:     detail.Item,
		Category: detail.Category,
	})
}

func (h *Handler) ItemCreateGet(w http.ResponseWriter, r *http.Request) {
	view, err := h.items.NewForm(r.Context())
	if err != nil {
		h.renderServerError(w, "ItemCreateGet", err)
		return
	}
	h.renderer.Render(w, http.StatusOK, "item_form", itemFormPage{
		Title:  "Create New Item",
		Action: "/item/item_form",
		View:   view,
	})
}

func (h *Handler) ItemCreatePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.renderBadRequest(w, "Malformed form submission")
		return
	}
	form := forms.ParseItem(r.PostForm)
	location, redisplay, err := h.items.Create(r.Context(), &form, uploadedImage(r))
	if err != nil {
		h.renderServerError(w, "ItemCreatePost", err)
		return
	}
	if redisplay != nil {
		h.renderer.Render(w, http.StatusOK, "item_form", itemFormPage{
			Title:  "Create Item",
			Action: "/item/item_form",
			View:   redisplay,
		})
		return
	}
	http.Redirect(w, r, location, http.StatusFound)
}

func (h *Handler) ItemUpdateGet(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(r)
	if !ok {
		h.renderNotFound(w, "Item not found")
		return
	}
	view, err := h.items.EditForm(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			h.renderNotFound(w, "Item not found")
		} else {
			h.renderServerError(w, "ItemUpdateGet", err)
		}
		return
	}
	h.renderer.Render(w, http.StatusOK, "item_form", itemFormPage{
		Title:  "Update Item",
		Action: "/item/" + id.Hex() + "/update",
		View:   view,
	})
}

func (h *Handler) ItemUpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(r)
	if !ok {
		h.renderNotFound(w, "Item not found")
		return
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.renderBadRequest(w, "Malformed form submission")
		return
	}
	form := forms.ParseItem(r.PostForm)
	location, redisplay, err := h.items.Update(r.Context(), id, &form, uploadedImage(r))
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			h.renderNotFound(w, "Item not found")
		} else {
			h.renderServerError(w, "ItemUpdatePost", err)
		}
		return
	}
	if redisplay != nil {
		h.renderer.Render(w, http.StatusOK, "item_form", itemFormPage{
			Title:  "Update Item",
			Action: "/item/" + id.Hex() + "/update",
			View:   redisplay,
		})
		return
	}
	http.Redirect(w, r, location, http.StatusFound)
}

func (h *Handler) ItemDeleteGet(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(r)
	if !ok {
		h.renderNotFound(w, "Item not found")
		return
	}
	detail, err := h.items.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			h.renderNotFound(w, "Item not found")
		} else {
			h.renderServerError(w, "ItemDeleteGet", err)
		}
		return
	}
	h.renderer.Render(w, http.StatusOK, "item_delete", itemDeleteView{Title: "Delete Item", Item: detail.Item})
}

func (h *Handler) ItemDeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(r)
	if !ok {
		h.renderNotFound(w, "Item not found")
		return
	}
	if err := h.items.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			h.renderNotFound(w, "Item not found")
		} else {
			h.renderServerError(w, "ItemDeletePost", err)
		}
		return
	}
	http.Redirect(w, r, "/item", http.StatusFound)
}

// --- Route Registration ---

// RegisterRoutes sets up the HTML routes for the catalog.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Index)

	r.Route("/category", func(r chi.Router) {
		r.Get("/", h.CategoryList)
		r.Get("/category_form", h.CategoryCreateGet)
		r.Post("/category_form", h.CategoryCreatePost)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.CategoryDetail)
			r.Get("/update", h.CategoryUpdateGet)
			r.Post("/update", h.CategoryUpdatePost)
			r.Get("/delete", h.CategoryDeleteGet)
			r.Post("/delete", h.CategoryDeletePost)
		})
	})

	r.Route("/item", func(r chi.Router) {
		r.Get("/", h.ItemList)
		r.Get("/item_form", h.ItemCreateGet)
		r.Post("/item_form", h.ItemCreatePost)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.ItemDetail)
			r.Get("/update", h.ItemUpdateGet)
			r.Post("/update", h.ItemUpdatePost)
			r.Get("/delete", h.ItemDeleteGet)
			r.Post("/delete", h.ItemDeletePost)
		})
	})
}
