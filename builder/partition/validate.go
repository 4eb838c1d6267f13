package partition

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/Kush-Singh-26/postsplit/builder/config"
	"github.com/Kush-Singh-26/postsplit/builder/models"
	"github.com/Kush-Singh-26/postsplit/builder/utils"
)

var urlSafeSlug = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Validate checks posts against the policy and returns their slugs in input order.
// Both policies require a slug usable as a file name and unique across the input.
func Validate(posts []models.Post, policy config.Policy) ([]string, error) {
	verr := &ValidationError{}
	slugs := make([]string, len(posts))
	firstSeen := make(map[string]int, len(posts))
	folded := make(map[string]int, len(posts))

	for i, post := range posts {
		slug, ok := post.SlugString()
		if !ok {
			verr.Add(i, "", "slug", "missing or not a string")
			continue
		}
		if msg := fileNameProblem(slug); msg != "" {
			verr.Add(i, slug, "slug", msg)
			continue
		}
		if prev, dup := firstSeen[slug]; dup {
			verr.Add(i, slug, "slug", "duplicate of record "+strconv.Itoa(prev))
			continue
		}
		// case-insensitive filesystems map both spellings to one file
		if prev, dup := folded[strings.ToLower(slug)]; dup {
			verr.Add(i, slug, "slug", "differs only in case from record "+strconv.Itoa(prev))
			continue
		}
		firstSeen[slug] = i
		folded[strings.ToLower(slug)] = i
		slugs[i] = slug

		if policy == config.PolicyStrict {
			checkStrict(verr, i, slug, post)
		}
	}

	if verr.HasAny() {
		return nil, verr
	}
	return slugs, nil
}

// CheckTargets rejects slugs whose content file, or one of its precompressed
// siblings, would land on a reserved path such as the index or the input.
// Paths are compared case-insensitively.
func CheckTargets(slugs []string, contentDir string, reserved ...string) error {
	verr := &ValidationError{}
	for i, slug := range slugs {
		target := filepath.Join(contentDir, ContentFileName(slug))
		if path, hit := collides(target, reserved); hit {
			verr.Add(i, slug, "slug", "content file would overwrite "+path)
		}
	}
	if verr.HasAny() {
		return verr
	}
	return nil
}

func collides(target string, reserved []string) (string, bool) {
	exts := []string{"", utils.GzipExt, utils.ZstdExt}
	for _, r := range reserved {
		for _, te := range exts {
			for _, re := range exts {
				if samePath(target+te, r+re) {
					return r, true
				}
			}
		}
	}
	return "", false
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return strings.EqualFold(filepath.Clean(a), filepath.Clean(b))
	}
	return strings.EqualFold(absA, absB)
}

// fileNameProblem reports why slug cannot name a file inside the content directory
func fileNameProblem(slug string) string {
	switch {
	case slug == "":
		return "empty"
	case slug == "." || slug == "..":
		return "reserved path name"
	case strings.ContainsAny(slug, `/\`):
		return "contains a path separator"
	case strings.ContainsRune(slug, 0):
		return "contains a NUL byte"
	}
	return ""
}

func checkStrict(verr *ValidationError, i int, slug string, post models.Post) {
	if !urlSafeSlug.MatchString(slug) {
		verr.Add(i, slug, "slug", "not URL-safe (want lowercase words joined by '-')")
	}

	for _, field := range models.Fields {
		raw := bytes.TrimSpace(post.Field(field))
		if len(raw) == 0 {
			verr.Add(i, slug, field, "missing")
			continue
		}
		if bytes.Equal(raw, []byte("null")) {
			verr.Add(i, slug, field, "null")
			continue
		}

		switch field {
		case "id":
			if raw[0] != '"' && !isNumber(raw) {
				verr.Add(i, slug, field, "want number or string")
			}
		case "tags":
			var tags []string
			if err := json.Unmarshal(raw, &tags); err != nil {
				verr.Add(i, slug, field, "want array of strings")
			}
		case "featured":
			if !bytes.Equal(raw, []byte("true")) && !bytes.Equal(raw, []byte("false")) {
				verr.Add(i, slug, field, "want boolean")
			}
		default:
			if raw[0] != '"' {
				verr.Add(i, slug, field, "want string")
			}
		}
	}
}

func isNumber(raw []byte) bool {
	var n json.Number
	return json.Unmarshal(raw, &n) == nil && raw[0] != '"'
}
