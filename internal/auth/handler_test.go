package auth_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/frahmantamala/employee-directory/internal/auth"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

var _ = Describe("Auth Handler Integration", func() {
	var (
		mockRepo *MockRepository
		handler  *auth.Handler
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		mockRepo.AddUser("admin", "pastibisa", &auth.SessionUser{
			ID:       1,
			Name:     "Administrator",
			Username: "admin",
			Phone:    "+6281234567890",
			Email:    "admin@example.com",
		})
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := auth.NewService(mockRepo, slogger, 32)
		handler = auth.NewHandler(service)
	})

	login := func(username, password string) *httptest.ResponseRecorder {
		body, err := json.Marshal(map[string]string{"username": username, "password": password})
		Expect(err).NotTo(HaveOccurred())

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
		w := httptest.NewRecorder()
		handler.Login(w, req)
		return w
	}

	Describe("POST /login", func() {
		It("should return the token and user on success", func() {
			w := login("admin", "pastibisa")
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp envelope
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Status).To(Equal("success"))
			Expect(resp.Message).To(Equal("Login successful"))

			var data auth.LoginResponse
			Expect(json.Unmarshal(resp.Data, &data)).To(Succeed())
			Expect(data.Token).NotTo(BeEmpty())
			Expect(data.User.Username).To(Equal("admin"))
		})

		It("should return 401 for bad credentials", func() {
			w := login("admin", "wrong")
			Expect(w.Code).To(Equal(http.StatusUnauthorized))

			var resp envelope
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Status).To(Equal("error"))
		})

		It("should return 422 for missing fields", func() {
			w := login("", "")
			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		})

		It("should return 400 for a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString("{"))
			w := httptest.NewRecorder()
			handler.Login(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /logout", func() {
		It("should revoke the token", func() {
			w := login("admin", "pastibisa")
			var resp envelope
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			var data auth.LoginResponse
			Expect(json.Unmarshal(resp.Data, &data)).To(Succeed())

			req := httptest.NewRequest(http.MethodPost, "/logout", nil)
			req.Header.Set("Authorization", "Bearer "+data.Token)
			out := httptest.NewRecorder()
			handler.Logout(out, req)

			Expect(out.Code).To(Equal(http.StatusOK))
			Expect(mockRepo.tokens).NotTo(HaveKey(data.Token))
		})

		It("should return 401 without a token", func() {
			req := httptest.NewRequest(http.MethodPost, "/logout", nil)
			w := httptest.NewRecorder()
			handler.Logout(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("AuthMiddleware", func() {
		var protected http.Handler

		BeforeEach(func() {
			protected = handler.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				user, ok := auth.UserFromContext(r.Context())
				Expect(ok).To(BeTrue())
				Expect(user.Username).To(Equal("admin"))
				w.WriteHeader(http.StatusOK)
			}))
		})

		It("should pass a valid token through with the user in context", func() {
			w := login("admin", "pastibisa")
			var resp envelope
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			var data auth.LoginResponse
			Expect(json.Unmarshal(resp.Data, &data)).To(Succeed())

			req := httptest.NewRequest(http.MethodGet, "/profile", nil)
			req.Header.Set("Authorization", "Bearer "+data.Token)
			out := httptest.NewRecorder()
			protected.ServeHTTP(out, req)

			Expect(out.Code).To(Equal(http.StatusOK))
		})

		It("should reject a missing token", func() {
			req := httptest.NewRequest(http.MethodGet, "/profile", nil)
			w := httptest.NewRecorder()
			protected.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should reject a revoked token", func() {
			w := login("admin", "pastibisa")
			var resp envelope
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			var data auth.LoginResponse
			Expect(json.Unmarshal(resp.Data, &data)).To(Succeed())

			req := httptest.NewRequest(http.MethodPost, "/logout", nil)
			req.Header.Set("Authorization", "Bearer "+data.Token)
			handler.Logout(httptest.NewRecorder(), req)

			check := httptest.NewRequest(http.MethodGet, "/profile", nil)
			check.Header.Set("Authorization", "Bearer "+data.Token)
			out := httptest.NewRecorder()
			protected.ServeHTTP(out, check)

			Expect(out.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
