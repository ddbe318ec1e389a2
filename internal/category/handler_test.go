package category_test

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/category-management/internal/category"
	categoryPostgres "github.com/frahmantamala/category-management/internal/category/postgres"
	categoryDatamodel "github.com/frahmantamala/category-management/internal/core/datamodel/category"
	"github.com/frahmantamala/category-management/internal/core/events"
	"github.com/frahmantamala/category-management/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Category Handler Integration", func() {
	var (
		db     *gorm.DB
		repo   category.RepositoryAPI
		router *chi.Mux
	)

	doJSON := func(method, target, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, target, nil)
		} else {
			req = httptest.NewRequest(method, target, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	decodeBody := func(w *httptest.ResponseRecorder) map[string]interface{} {
		var body map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		return body
	}

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&categoryDatamodel.Category{}, &categoryDatamodel.Card{})
		Expect(err).NotTo(HaveOccurred())

		repo = categoryPostgres.NewCategoryRepository(db)
		service := category.NewService(repo, events.NewEventBus(slogger), slogger)
		handler := category.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		router.Route("/api/category", func(r chi.Router) {
			r.Post("/", handler.CreateCategory)
			r.Get("/", handler.ListCategories)
			r.Put("/{id}", handler.UpdateCategory)
			r.Delete("/{id}", handler.DeleteCategory)
		})
	})

	Describe("POST /api/category", func() {
		It("should create a category and return 201 with the record", func() {
			w := doJSON(http.MethodPost, "/api/category", `{"name":"Math","user_id":1,"description":"arithmetic"}`)
			Expect(w.Code).To(Equal(http.StatusCreated))

			body := decodeBody(w)
			Expect(body["id"]).To(BeNumerically(">", 0))
			Expect(body["name"]).To(Equal("Math"))
			Expect(body["user_id"]).To(BeNumerically("==", 1))
			Expect(body["description"]).To(Equal("arithmetic"))
			Expect(body["deleted_at"]).To(BeNil())
		})

		It("should collect all field violations into one 400 response", func() {
			w := doJSON(http.MethodPost, "/api/category", `{"description":"no name or owner"}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))

			body := decodeBody(w)
			Expect(body["error"]).To(Equal("Validation failed"))
			details := body["details"].([]interface{})
			Expect(details).To(ContainElement("name is required"))
			Expect(details).To(ContainElement("user_id is required"))
		})

		It("should report a non-string name as a field type violation", func() {
			w := doJSON(http.MethodPost, "/api/category", `{"name":123,"user_id":1}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))

			body := decodeBody(w)
			details := body["details"].([]interface{})
			Expect(details).To(ContainElement("name must be a string"))
		})

		It("should report a non-integer user_id as a field type violation", func() {
			w := doJSON(http.MethodPost, "/api/category", `{"name":"Math","user_id":"one"}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))

			body := decodeBody(w)
			details := body["details"].([]interface{})
			Expect(details).To(ContainElement("user_id must be an integer"))
		})

		It("should return 400 with the message for duplicate active names", func() {
			Expect(doJSON(http.MethodPost, "/api/category", `{"name":"Math","user_id":1}`).Code).To(Equal(http.StatusCreated))

			w := doJSON(http.MethodPost, "/api/category", `{"name":"Math","user_id":2}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeBody(w)["error"]).To(Equal("Category already exists"))
		})
	})

	Describe("GET /api/category", func() {
		BeforeEach(func() {
			for i := 1; i <= 12; i++ {
				userID := 1
				if i > 8 {
					userID = 2
				}
				payload := fmt.Sprintf(`{"name":"Deck %02d","user_id":%d}`, i, userID)
				Expect(doJSON(http.MethodPost, "/api/category", payload).Code).To(Equal(http.StatusCreated))
			}
		})

		It("should return the first page with defaults and meta", func() {
			w := doJSON(http.MethodGet, "/api/category", "")
			Expect(w.Code).To(Equal(http.StatusOK))

			body := decodeBody(w)
			data := body["data"].([]interface{})
			Expect(data).To(HaveLen(10))

			meta := body["meta"].(map[string]interface{})
			Expect(meta["page"]).To(BeNumerically("==", 1))
			Expect(meta["per_page"]).To(BeNumerically("==", 10))
			Expect(meta["total"]).To(BeNumerically("==", 12))
			Expect(meta["total_pages"]).To(BeNumerically("==", 2))
		})

		It("should slice the requested page", func() {
			w := doJSON(http.MethodGet, "/api/category?page=2&per_page=10", "")
			Expect(w.Code).To(Equal(http.StatusOK))

			body := decodeBody(w)
			Expect(body["data"].([]interface{})).To(HaveLen(2))
		})

		It("should fall back to defaults for malformed paging values", func() {
			w := doJSON(http.MethodGet, "/api/category?page=abc&per_page=-3", "")
			Expect(w.Code).To(Equal(http.StatusOK))

			meta := decodeBody(w)["meta"].(map[string]interface{})
			Expect(meta["page"]).To(BeNumerically("==", 1))
			Expect(meta["per_page"]).To(BeNumerically("==", 10))
		})

		It("should filter by name substring", func() {
			w := doJSON(http.MethodGet, "/api/category?name=Deck+01", "")
			Expect(w.Code).To(Equal(http.StatusOK))

			body := decodeBody(w)
			data := body["data"].([]interface{})
			Expect(data).To(HaveLen(1))
			item := data[0].(map[string]interface{})
			Expect(item["name"]).To(Equal("Deck 01"))
		})

		It("should filter by owner", func() {
			w := doJSON(http.MethodGet, "/api/category?user_id=2", "")
			Expect(w.Code).To(Equal(http.StatusOK))

			body := decodeBody(w)
			meta := body["meta"].(map[string]interface{})
			Expect(meta["total"]).To(BeNumerically("==", 4))
		})

		It("should return empty data with accurate meta for an out-of-range page", func() {
			w := doJSON(http.MethodGet, "/api/category?page=9", "")
			Expect(w.Code).To(Equal(http.StatusOK))

			body := decodeBody(w)
			Expect(body["data"].([]interface{})).To(BeEmpty())
			meta := body["meta"].(map[string]interface{})
			Expect(meta["total"]).To(BeNumerically("==", 12))
		})
	})

	Describe("PUT /api/category/{id}", func() {
		var mathID int64

		BeforeEach(func() {
			w := doJSON(http.MethodPost, "/api/category", `{"name":"Math","user_id":1}`)
			Expect(w.Code).To(Equal(http.StatusCreated))
			mathID = int64(decodeBody(w)["id"].(float64))

			Expect(doJSON(http.MethodPost, "/api/category", `{"name":"Science","user_id":1}`).Code).To(Equal(http.StatusCreated))
		})

		It("should update and return 200 with message and result", func() {
			w := doJSON(http.MethodPut, fmt.Sprintf("/api/category/%d", mathID), `{"name":"Algebra","description":"symbols"}`)
			Expect(w.Code).To(Equal(http.StatusOK))

			body := decodeBody(w)
			Expect(body["message"]).To(Equal("Category updated successfully"))
			result := body["result"].(map[string]interface{})
			Expect(result["name"]).To(Equal("Algebra"))
			Expect(result["description"]).To(Equal("symbols"))
		})

		It("should return 404 for an unknown id", func() {
			w := doJSON(http.MethodPut, "/api/category/9999", `{"name":"Algebra"}`)
			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(decodeBody(w)["error"]).To(Equal("Category not found"))
		})

		It("should return 409 when the name is held by another active category", func() {
			w := doJSON(http.MethodPut, fmt.Sprintf("/api/category/%d", mathID), `{"name":"Science"}`)
			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(decodeBody(w)["error"]).To(Equal("Category already exists"))
		})

		It("should accept an unchanged name without a uniqueness conflict", func() {
			w := doJSON(http.MethodPut, fmt.Sprintf("/api/category/%d", mathID), `{"name":"Math","description":"still numbers"}`)
			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("should return 400 for a non-numeric id", func() {
			w := doJSON(http.MethodPut, "/api/category/abc", `{"name":"Algebra"}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeBody(w)["error"]).To(Equal("ID must be a number"))
		})

		It("should return 400 when name is missing", func() {
			w := doJSON(http.MethodPut, fmt.Sprintf("/api/category/%d", mathID), `{"description":"nameless"}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeBody(w)["error"]).To(Equal("Validation failed"))
		})
	})

	Describe("DELETE /api/category/{id}", func() {
		var mathID int64

		BeforeEach(func() {
			w := doJSON(http.MethodPost, "/api/category", `{"name":"Math","user_id":1}`)
			Expect(w.Code).To(Equal(http.StatusCreated))
			mathID = int64(decodeBody(w)["id"].(float64))
		})

		It("should soft delete a childless category and return the record", func() {
			w := doJSON(http.MethodDelete, fmt.Sprintf("/api/category/%d", mathID), "")
			Expect(w.Code).To(Equal(http.StatusOK))

			body := decodeBody(w)
			Expect(body["message"]).To(Equal("Category deleted successfully"))
			result := body["result"].(map[string]interface{})
			Expect(result["deleted_at"]).NotTo(BeNil())

			// row persists for audit
			var count int64
			Expect(db.Unscoped().Model(&categoryDatamodel.Category{}).Where("id = ?", mathID).Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(1)))
		})

		It("should return 409 while the category owns cards", func() {
			Expect(db.Create(&categoryDatamodel.Card{CategoryID: mathID}).Error).To(Succeed())

			w := doJSON(http.MethodDelete, fmt.Sprintf("/api/category/%d", mathID), "")
			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(decodeBody(w)["message"]).To(Equal("Category having cards cannot be deleted"))
		})

		It("should return 404 for an unknown id", func() {
			w := doJSON(http.MethodDelete, "/api/category/9999", "")
			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(decodeBody(w)["message"]).To(Equal("Category not found"))
		})

		It("should return 400 for a non-numeric id", func() {
			w := doJSON(http.MethodDelete, "/api/category/abc", "")
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeBody(w)["message"]).To(Equal("ID must be a number"))
		})
	})

	Describe("category lifecycle", func() {
		It("should run create, conflict, rename, list, delete, and exclusion end to end", func() {
			w := doJSON(http.MethodPost, "/api/category", `{"name":"Math","user_id":1}`)
			Expect(w.Code).To(Equal(http.StatusCreated))
			body := decodeBody(w)
			Expect(body["name"]).To(Equal("Math"))
			mathID := int64(body["id"].(float64))

			w = doJSON(http.MethodPost, "/api/category", `{"name":"Math","user_id":2}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeBody(w)["error"]).To(Equal("Category already exists"))

			w = doJSON(http.MethodPut, fmt.Sprintf("/api/category/%d", mathID), `{"name":"Algebra"}`)
			Expect(w.Code).To(Equal(http.StatusOK))

			w = doJSON(http.MethodGet, "/api/category?name=Algebra", "")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decodeBody(w)["data"].([]interface{})).To(HaveLen(1))

			w = doJSON(http.MethodDelete, fmt.Sprintf("/api/category/%d", mathID), "")
			Expect(w.Code).To(Equal(http.StatusOK))
			result := decodeBody(w)["result"].(map[string]interface{})
			Expect(result["deleted_at"]).NotTo(BeNil())

			w = doJSON(http.MethodGet, "/api/category", "")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decodeBody(w)["data"].([]interface{})).To(BeEmpty())
		})
	})
})
