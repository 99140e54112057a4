// Package updater checks GitHub for newer releases.
package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Dicklesworthstone/progress_curve/pkg/version"
)

// DefaultReleaseURL is the latest-release endpoint of the project.
const DefaultReleaseURL = "https://api.github.com/repos/Dicklesworthstone/progress_curve/releases/latest"

// DefaultTimeout bounds the release query so it never stalls the CLI.
const DefaultTimeout = 2 * time.Second

type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Checker queries a release endpoint.
type Checker struct {
	URL    string
	Client *http.Client
}

// NewChecker returns a checker against the project's release endpoint.
func NewChecker() *Checker {
	return &Checker{
		URL:    DefaultReleaseURL,
		Client: &http.Client{Timeout: DefaultTimeout},
	}
}

// Latest fetches the latest release.
func (c *Checker) Latest(ctx context.Context) (Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return Release{}, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return Release{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Release{}, fmt.Errorf("github api returned status: %s", resp.Status)
	}

	var rel Release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return Release{}, fmt.Errorf("decode release: %w", err)
	}
	return rel, nil
}

// CheckForUpdates returns the newer tag and its URL, or empty strings when
// current is up to date.
func (c *Checker) CheckForUpdates(ctx context.Context, current string) (string, string, error) {
	rel, err := c.Latest(ctx)
	if err != nil {
		return "", "", err
	}
	if CompareVersions(rel.TagName, current) > 0 {
		return rel.TagName, rel.HTMLURL, nil
	}
	return "", "", nil
}

// CheckForUpdates checks the running binary against the latest release.
func CheckForUpdates(ctx context.Context) (string, string, error) {
	return NewChecker().CheckForUpdates(ctx, version.Version)
}

// CompareVersions returns 1 if v1 > v2, -1 if v1 < v2, 0 if equal. Versions
// compare numerically per dot segment; a pre-release suffix sorts before the
// plain release.
func CompareVersions(v1, v2 string) int {
	c1, pre1 := splitVersion(v1)
	c2, pre2 := splitVersion(v2)
	for i := 0; i < len(c1) || i < len(c2); i++ {
		var a, b int
		if i < len(c1) {
			a = c1[i]
		}
		if i < len(c2) {
			b = c2[i]
		}
		if a != b {
			if a > b {
				return 1
			}
			return -1
		}
	}
	switch {
	case pre1 == pre2:
		return 0
	case pre1 == "":
		return 1
	case pre2 == "":
		return -1
	case pre1 > pre2:
		return 1
	default:
		return -1
	}
}

func splitVersion(v string) ([]int, string) {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	if i := strings.IndexByte(v, '+'); i >= 0 {
		v = v[:i]
	}
	var pre string
	if i := strings.IndexByte(v, '-'); i >= 0 {
		v, pre = v[:i], v[i+1:]
	}
	var nums []int
	for _, part := range strings.Split(v, ".") {
		n, err := strconv.Atoi(part)
		if err != nil {
			n = 0
		}
		nums = append(nums, n)
	}
	return nums, pre
}
