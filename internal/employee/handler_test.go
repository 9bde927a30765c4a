package employee_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/frahmantamala/employee-directory/internal/employee"
	"github.com/frahmantamala/employee-directory/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type envelope struct {
	Status     string                `json:"status"`
	Message    string                `json:"message"`
	Data       json.RawMessage       `json:"data"`
	Pagination *transport.Pagination `json:"pagination"`
}

// multipartBody builds an employee form, optionally attaching an image file.
func multipartBody(fields map[string]string, imageName string) (*bytes.Buffer, string) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for key, value := range fields {
		_ = writer.WriteField(key, value)
	}

	if imageName != "" {
		part, err := writer.CreateFormFile("image", imageName)
		Expect(err).NotTo(HaveOccurred())
		_, err = io.WriteString(part, "fake image bytes")
		Expect(err).NotTo(HaveOccurred())
	}

	Expect(writer.Close()).To(Succeed())
	return buf, writer.FormDataContentType()
}

var _ = Describe("Employee Handler Integration", func() {
	var (
		mockRepo *MockRepository
		files    *MockFileStore
		handler  *employee.Handler
		router   *chi.Mux
	)

	validFields := func() map[string]string {
		return map[string]string{
			"name":     "John Doe",
			"phone":    "+6281111111111",
			"position": "Software Engineer",
			"division": "1",
		}
	}

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		mockRepo.divisions[1] = true
		files = NewMockFileStore()
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := employee.NewService(mockRepo, files, slogger)
		handler = employee.NewHandler(service)

		router = chi.NewRouter()
		router.Get("/employees", handler.ListEmployees)
		router.Post("/employees", handler.CreateEmployee)
		router.Put("/employees/{id}", handler.UpdateEmployee)
		router.Post("/employees/{id}", handler.UpdateEmployee)
		router.Delete("/employees/{id}", handler.DeleteEmployee)
	})

	Describe("POST /employees", func() {
		It("should create an employee from a multipart form with an avatar", func() {
			body, contentType := multipartBody(validFields(), "avatar.png")
			req := httptest.NewRequest(http.MethodPost, "/employees", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var resp envelope
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Status).To(Equal("success"))

			var data employee.EmployeeResponse
			Expect(json.Unmarshal(resp.Data, &data)).To(Succeed())
			Expect(data.Employee.Image).NotTo(BeNil())
		})

		It("should create an employee without an avatar", func() {
			body, contentType := multipartBody(validFields(), "")
			req := httptest.NewRequest(http.MethodPost, "/employees", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))
		})

		It("should return 422 for missing fields", func() {
			fields := validFields()
			fields["phone"] = ""

			body, contentType := multipartBody(fields, "")
			req := httptest.NewRequest(http.MethodPost, "/employees", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		})

		It("should return 422 for an unsupported image type", func() {
			body, contentType := multipartBody(validFields(), "avatar.exe")
			req := httptest.NewRequest(http.MethodPost, "/employees", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		})

		It("should return 400 for a non-multipart body", func() {
			req := httptest.NewRequest(http.MethodPost, "/employees", bytes.NewBufferString(`{"name":"x"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("PUT /employees/{id}", func() {
		BeforeEach(func() {
			err := mockRepo.Create(&employee.Employee{
				Name:       "John Doe",
				Phone:      "+6281111111111",
				Position:   "Software Engineer",
				DivisionID: 1,
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should update the employee", func() {
			fields := validFields()
			fields["position"] = "Staff Engineer"

			body, contentType := multipartBody(fields, "")
			req := httptest.NewRequest(http.MethodPut, "/employees/1", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			got, err := mockRepo.GetByID(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Position).To(Equal("Staff Engineer"))
		})

		It("should accept POST as a method override", func() {
			body, contentType := multipartBody(validFields(), "")
			req := httptest.NewRequest(http.MethodPost, "/employees/1", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("should return 404 for an unknown employee", func() {
			body, contentType := multipartBody(validFields(), "")
			req := httptest.NewRequest(http.MethodPut, "/employees/42", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("DELETE /employees/{id}", func() {
		It("should delete the employee", func() {
			err := mockRepo.Create(&employee.Employee{
				Name:       "John Doe",
				Phone:      "+6281111111111",
				Position:   "Software Engineer",
				DivisionID: 1,
			})
			Expect(err).NotTo(HaveOccurred())

			req := httptest.NewRequest(http.MethodDelete, "/employees/1", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("should return 404 for an unknown employee", func() {
			req := httptest.NewRequest(http.MethodDelete, "/employees/42", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("GET /employees", func() {
		BeforeEach(func() {
			for _, e := range []struct{ name, phone string }{
				{"John Doe", "+62811"},
				{"Jane Smith", "+62822"},
			} {
				err := mockRepo.Create(&employee.Employee{
					Name:       e.name,
					Phone:      e.phone,
					Position:   "Engineer",
					DivisionID: 1,
				})
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("should return the envelope with pagination", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp envelope
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Status).To(Equal("success"))
			Expect(resp.Pagination.Total).To(Equal(int64(2)))
			Expect(resp.Pagination.PerPage).To(Equal(employee.DefaultPerPage))
		})

		It("should pass the name filter through", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees?name=jane", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			var resp envelope
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Pagination.Total).To(Equal(int64(1)))
		})
	})
})
