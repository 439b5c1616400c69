package deploy

import (
	"path"
	"strings"
)

// normalizeEntry converts an archive entry name to a clean slash-separated
// path relative to the deployment root.
func normalizeEntry(name string) string {
	p := path.Clean(strings.ReplaceAll(name, `\`, "/"))
	return strings.TrimPrefix(p, "/")
}

// safeEntry reports whether an entry name stays inside the deployment root
// after normalization.
func safeEntry(name string) bool {
	p := normalizeEntry(name)
	return p != "" && p != "." && p != ".." && !strings.HasPrefix(p, "../")
}

// joinRemote joins the base directory and an entry name with exactly one
// separator.
func joinRemote(base, name string) string {
	return strings.TrimRight(base, "/") + "/" + normalizeEntry(name)
}

// parentDirs lists every intermediate directory of an entry under base,
// shallowest first, as absolute remote paths.
func parentDirs(base, name string) []string {
	prefix := strings.TrimRight(base, "/")
	parts := strings.Split(normalizeEntry(name), "/")
	dirs := make([]string, 0, len(parts)-1)
	for _, part := range parts[:len(parts)-1] {
		prefix += "/" + part
		dirs = append(dirs, prefix)
	}
	return dirs
}
