package util

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/go-git/go-git/v5"
)

type Version struct {
	Major uint
	Minor uint
	Patch uint
}

var ToolVersion = Version{0, 1, 0}

func (v Version) String() string {
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// RevisionTag returns a short identifier of the source revision the tool was
// built from, for the provenance line of generated build scripts. The tag
// comes from the build info stamped into the binary or, for an unstamped
// binary built inside a source checkout, from the repository containing the
// executable. Without either it is "--------".
//
// The fallback deliberately anchors on the executable, not the working
// directory: builds run inside the user's design tree, whose revision says
// nothing about the tool.
func RevisionTag() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && len(setting.Value) >= 7 {
				return setting.Value[:7]
			}
		}
	}
	if executable, err := os.Executable(); err == nil {
		if revision, err := GitRevision(filepath.Dir(executable)); err == nil {
			return revision
		}
	}
	return "--------"
}

// GitRevision returns the abbreviated HEAD commit hash of the git repository
// containing `dir`.
func GitRevision(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", err
	}
	return head.Hash().String()[:7], nil
}
