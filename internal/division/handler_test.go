package division_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/frahmantamala/employee-directory/internal/division"
	divisionPostgres "github.com/frahmantamala/employee-directory/internal/division/postgres"
	"github.com/frahmantamala/employee-directory/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SQLite-compatible models for the handler integration tests
type sqliteDivision struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sqliteDivision) TableName() string {
	return "divisions"
}

type sqliteEmployee struct {
	ID         int64   `gorm:"primaryKey"`
	Name       string  `gorm:"column:name;not null"`
	Phone      string  `gorm:"column:phone;uniqueIndex;not null"`
	Position   string  `gorm:"column:position;not null"`
	DivisionID int64   `gorm:"column:division_id;not null"`
	Image      *string `gorm:"column:image"`
}

func (sqliteEmployee) TableName() string {
	return "employees"
}

type envelope struct {
	Status     string                `json:"status"`
	Message    string                `json:"message"`
	Data       json.RawMessage       `json:"data"`
	Pagination *transport.Pagination `json:"pagination"`
}

var _ = Describe("Division Handler Integration", func() {
	var (
		db      *gorm.DB
		repo    division.RepositoryAPI
		handler *division.Handler
		router  *chi.Mux
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&sqliteDivision{}, &sqliteEmployee{})
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo = divisionPostgres.NewDivisionRepository(db)
		service := division.NewService(repo, slogger)
		handler = division.NewHandler(service)

		router = chi.NewRouter()
		router.Get("/divisions", handler.ListDivisions)
		router.Post("/divisions", handler.CreateDivision)
		router.Put("/divisions/{id}", handler.UpdateDivision)
		router.Delete("/divisions/{id}", handler.DeleteDivision)
	})

	Describe("GET /divisions", func() {
		BeforeEach(func() {
			for _, name := range []string{"Backend", "Frontend", "QA"} {
				Expect(repo.Create(&division.Division{Name: name})).To(Succeed())
			}
		})

		It("should return the envelope with pagination", func() {
			req := httptest.NewRequest(http.MethodGet, "/divisions", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

			var resp envelope
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Status).To(Equal("success"))
			Expect(resp.Pagination).NotTo(BeNil())
			Expect(resp.Pagination.Total).To(Equal(int64(3)))
			Expect(resp.Pagination.PerPage).To(Equal(division.PerPage))

			var data division.DivisionsResponse
			Expect(json.Unmarshal(resp.Data, &data)).To(Succeed())
			Expect(data.Divisions).To(HaveLen(3))
		})

		It("should filter by name", func() {
			req := httptest.NewRequest(http.MethodGet, "/divisions?name=end", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			var resp envelope
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Pagination.Total).To(Equal(int64(2)))
		})
	})

	Describe("POST /divisions", func() {
		It("should create a division", func() {
			body := bytes.NewBufferString(`{"name":"Backend"}`)
			req := httptest.NewRequest(http.MethodPost, "/divisions", body)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var resp envelope
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Status).To(Equal("success"))
		})

		It("should return 422 for a duplicate name", func() {
			Expect(repo.Create(&division.Division{Name: "Backend"})).To(Succeed())

			body := bytes.NewBufferString(`{"name":"Backend"}`)
			req := httptest.NewRequest(http.MethodPost, "/divisions", body)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))

			var resp envelope
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Status).To(Equal("error"))
			Expect(resp.Message).To(ContainSubstring("already exists"))
		})

		It("should return 422 for a missing name", func() {
			body := bytes.NewBufferString(`{"name":""}`)
			req := httptest.NewRequest(http.MethodPost, "/divisions", body)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		})

		It("should return 400 for a malformed body", func() {
			body := bytes.NewBufferString(`{`)
			req := httptest.NewRequest(http.MethodPost, "/divisions", body)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("PUT /divisions/{id}", func() {
		It("should rename the division", func() {
			d := &division.Division{Name: "Backend"}
			Expect(repo.Create(d)).To(Succeed())

			body := bytes.NewBufferString(`{"name":"Platform"}`)
			req := httptest.NewRequest(http.MethodPut, "/divisions/1", body)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			got, err := repo.GetByID(d.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Name).To(Equal("Platform"))
		})

		It("should return 404 for an unknown division", func() {
			body := bytes.NewBufferString(`{"name":"Ghost"}`)
			req := httptest.NewRequest(http.MethodPut, "/divisions/42", body)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("DELETE /divisions/{id}", func() {
		It("should delete an empty division", func() {
			d := &division.Division{Name: "Backend"}
			Expect(repo.Create(d)).To(Succeed())

			req := httptest.NewRequest(http.MethodDelete, "/divisions/1", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("should return 409 when the division still has employees", func() {
			d := &division.Division{Name: "Backend"}
			Expect(repo.Create(d)).To(Succeed())

			emp := sqliteEmployee{Name: "John Doe", Phone: "+628111", Position: "Engineer", DivisionID: d.ID}
			Expect(db.Create(&emp).Error).To(Succeed())

			req := httptest.NewRequest(http.MethodDelete, "/divisions/1", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))

			got, err := repo.GetByID(d.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).NotTo(BeNil())
		})

		It("should return 404 for an unknown division", func() {
			req := httptest.NewRequest(http.MethodDelete, "/divisions/42", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
