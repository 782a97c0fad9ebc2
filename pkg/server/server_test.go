package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/giantswarm/auth-settings/pkg/deployment"
	"github.com/giantswarm/auth-settings/pkg/key"
)

type failingSource struct{}

func (failingSource) DeploymentConfig(ctx context.Context) (deployment.DeploymentConfig, error) {
	return deployment.DeploymentConfig{}, errors.New("source unavailable")
}

var _ = Describe("Server", func() {
	var (
		registry *prometheus.Registry
		srv      *Server
		ts       *httptest.Server
		source   deployment.Source
	)

	get := func(path string) (*http.Response, string) {
		resp, err := http.Get(ts.URL + path)
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		return resp, string(body)
	}

	JustBeforeEach(func() {
		var err error
		registry = prometheus.NewRegistry()
		srv, err = New(Config{
			Log:      testLogger(),
			Source:   source,
			Registry: registry,
			Address:  "127.0.0.1:0",
		})
		Expect(err).NotTo(HaveOccurred())
		ts = httptest.NewServer(srv.Handler())
		DeferCleanup(ts.Close)
	})

	Context("with oidc configured", func() {
		BeforeEach(func() {
			source = deployment.StaticSource{Values: deployment.Values{
				OIDC: deployment.OIDCValues{
					ClientID:     "oidc-client",
					ClientSecret: "oidc-secret",
					AllowSignups: true,
					Scopes:       []string{"openid", "profile"},
				},
			}}
		})

		It("redirects the root to the auth page", func() {
			client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}
			resp, err := client.Get(ts.URL + "/")
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusFound))
			Expect(resp.Header.Get("Location")).To(Equal(AuthPagePath))
		})

		It("renders the auth page", func() {
			resp, body := get(AuthPagePath)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Header.Get("Content-Type")).To(HavePrefix("text/html"))
			Expect(resp.Header.Get(key.RequestIDHeader)).NotTo(BeEmpty())
			Expect(body).To(ContainSubstring("Login with OpenID Connect"))
			Expect(body).To(ContainSubstring("Login with GitHub"))
			Expect(body).To(ContainSubstring(`<span class="badge badge-enabled">Enabled</span>`))
			Expect(body).To(ContainSubstring(`<span class="badge badge-disabled">Disabled</span>`))
			Expect(body).To(ContainSubstring("<ul><li>openid</li><li>profile</li></ul>"))
		})

		It("does not leak secrets", func() {
			_, body := get(AuthPagePath)
			Expect(body).NotTo(ContainSubstring("oidc-secret"))
			Expect(body).To(ContainSubstring(key.RedactedValue))

			_, body = get(DeploymentConfigPath)
			Expect(body).NotTo(ContainSubstring("oidc-secret"))
		})

		It("renders a single group", func() {
			resp, body := get(AuthPagePath + "/github")
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(body).To(ContainSubstring("Login with GitHub"))
			Expect(body).NotTo(ContainSubstring("Login with OpenID Connect"))
			Expect(body).NotTo(ContainSubstring("<html"))
		})

		It("returns 404 for unknown groups", func() {
			resp, _ := get(AuthPagePath + "/saml")
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})

		It("serves the deployment config keyed by option", func() {
			resp, body := get(DeploymentConfigPath)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			result := map[string]map[string]any{}
			Expect(json.Unmarshal([]byte(body), &result)).To(Succeed())
			Expect(result).To(HaveLen(len(deployment.Keys)))
			Expect(result[deployment.KeyOIDCClientID]["value"]).To(Equal("oidc-client"))
			Expect(result[deployment.KeyOIDCClientID]["name"]).To(Equal("OIDC Client ID"))
			Expect(result[deployment.KeyOIDCAllowSignups]["value"]).To(Equal(true))
			Expect(result[deployment.KeyOIDCScopes]["value"]).To(Equal([]any{"openid", "profile"}))
		})

		It("serves empty lists as empty arrays", func() {
			_, body := get(DeploymentConfigPath)

			result := map[string]map[string]any{}
			Expect(json.Unmarshal([]byte(body), &result)).To(Succeed())
			for _, k := range []string{deployment.KeyOAuth2GithubAllowedTeams, deployment.KeyOAuth2GithubAllowedOrganizations} {
				Expect(result[k]["value"]).To(Equal([]any{}))
				Expect(result[k]["default"]).To(Equal([]any{}))
			}
			Expect(body).NotTo(ContainSubstring("null"))
		})

		It("serves static assets without caching", func() {
			resp, body := get("/static/style.css")
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Header.Get("Cache-Control")).To(Equal("no-cache, private, max-age=0"))
			Expect(body).To(ContainSubstring(".badge-enabled"))
		})

		It("records metrics", func() {
			get(AuthPagePath)
			Expect(testutil.ToFloat64(srv.metrics.renders.WithLabelValues("auth", "success"))).To(Equal(1.0))
			Expect(testutil.ToFloat64(srv.metrics.providerEnabled.WithLabelValues("oidc"))).To(Equal(1.0))
			Expect(testutil.ToFloat64(srv.metrics.providerEnabled.WithLabelValues("github"))).To(Equal(0.0))

			_, body := get("/metrics")
			Expect(body).To(ContainSubstring("auth_settings_page_renders_total"))
		})

		It("keeps a given request id", func() {
			req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
			Expect(err).NotTo(HaveOccurred())
			req.Header.Set(key.RequestIDHeader, "abc")
			resp, err := http.DefaultClient.Do(req)
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(resp.Header.Get(key.RequestIDHeader)).To(Equal("abc"))
		})
	})

	Context("when the source fails", func() {
		BeforeEach(func() {
			source = failingSource{}
		})

		It("returns an internal server error", func() {
			resp, body := get(AuthPagePath)
			Expect(resp.StatusCode).To(Equal(http.StatusInternalServerError))
			Expect(body).To(ContainSubstring("source unavailable"))
			Expect(testutil.ToFloat64(srv.metrics.renders.WithLabelValues("auth", "error"))).To(Equal(1.0))

			resp, _ = get(DeploymentConfigPath)
			Expect(resp.StatusCode).To(Equal(http.StatusInternalServerError))
			Expect(testutil.ToFloat64(srv.metrics.renders.WithLabelValues("deployment_config", "error"))).To(Equal(1.0))

			resp, _ = get(AuthPagePath + "/github")
			Expect(resp.StatusCode).To(Equal(http.StatusInternalServerError))
			Expect(testutil.ToFloat64(srv.metrics.renders.WithLabelValues("auth/github", "error"))).To(Equal(1.0))
			Expect(testutil.ToFloat64(srv.metrics.renders.WithLabelValues("auth", "error"))).To(Equal(1.0))
		})
	})
})

var _ = Describe("New", func() {
	It("validates its config", func() {
		_, err := New(Config{Source: deployment.StaticSource{}, Address: ":0"})
		Expect(IsInvalidConfig(err)).To(BeTrue())
		_, err = New(Config{Log: testLogger(), Address: ":0"})
		Expect(IsInvalidConfig(err)).To(BeTrue())
		_, err = New(Config{Log: testLogger(), Source: deployment.StaticSource{}})
		Expect(IsInvalidConfig(err)).To(BeTrue())
	})
})

var _ = Describe("Run", func() {
	It("serves until the context is cancelled", func() {
		srv, err := New(Config{Log: testLogger(), Source: deployment.StaticSource{}, Address: "127.0.0.1:0"})
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		addrCh := make(chan string, 1)
		done := make(chan error, 1)
		go func() {
			done <- srv.Run(ctx, func(addr string) { addrCh <- addr })
		}()

		var addr string
		Eventually(addrCh, 5*time.Second).Should(Receive(&addr))
		resp, err := http.Get("http://" + addr + "/healthz")
		Expect(err).NotTo(HaveOccurred())
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		Expect(strings.TrimSpace(string(body))).To(Equal("ok"))

		cancel()
		Eventually(done, 10*time.Second).Should(Receive(BeNil()))
	})
})
