package updater_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/lumen/pkg/logger"
	"github.com/kpauljoseph/lumen/pkg/updater"
)

var _ = Describe("Checker", func() {
	var (
		release updater.GitHubRelease
		status  int
		server  *httptest.Server
		log     *logger.Logger
	)

	BeforeEach(func() {
		release = updater.GitHubRelease{TagName: "v1.2.0", Body: "notes", HTMLURL: "https://example.com/r/1.2.0"}
		status = http.StatusOK
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer GinkgoRecover()
			Expect(r.Header.Get("User-Agent")).To(Equal("Lumen-Updater"))
			w.WriteHeader(status)
			Expect(json.NewEncoder(w).Encode(release)).To(Succeed())
		}))
		log = logger.New(logger.WithOutput(GinkgoWriter), logger.WithLevel(logger.LevelDebug))
	})

	AfterEach(func() {
		server.Close()
	})

	check := func(current string) (*updater.UpdateInfo, error) {
		c := updater.NewChecker(current, log, updater.WithReleaseURL(server.URL))
		return c.CheckForUpdates(context.Background())
	}

	It("reports a newer release", func() {
		info, err := check("v1.1.9")
		Expect(err).NotTo(HaveOccurred())
		Expect(info.IsAvailable).To(BeTrue())
		Expect(info.LatestVersion).To(Equal("1.2.0"))
		Expect(info.DownloadURL).To(Equal("https://example.com/r/1.2.0"))
	})

	It("reports no update when current", func() {
		info, err := check("1.2.0")
		Expect(err).NotTo(HaveOccurred())
		Expect(info.IsAvailable).To(BeFalse())
	})

	It("ignores prereleases", func() {
		release.Prerelease = true
		info, err := check("1.0.0")
		Expect(err).NotTo(HaveOccurred())
		Expect(info.IsAvailable).To(BeFalse())
	})

	It("fails on a bad status", func() {
		status = http.StatusForbidden
		_, err := check("1.0.0")
		Expect(err).To(MatchError(ContainSubstring("status 403")))
	})
})

var _ = DescribeTable("CompareVersions",
	func(v1, v2 string, expected int) {
		Expect(updater.CompareVersions(v1, v2)).To(Equal(expected))
	},
	Entry("equal", "1.2.3", "1.2.3", 0),
	Entry("numeric not lexical", "1.10.0", "1.9.0", 1),
	Entry("shorter is older", "1.2", "1.2.1", -1),
	Entry("missing parts are zero", "1.2.0", "1.2", 0),
	Entry("suffix ignored", "1.3.0-rc1", "1.3.0", 0),
	Entry("dev is oldest", "dev", "0.0.1", -1),
)
