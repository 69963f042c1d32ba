package walker

import (
	"fmt"
	"os"
	"os/exec"
)

// CloneGitHub clones a repository URL into a fresh temporary directory and
// returns the checkout path. The caller may walk it like any local root;
// the directory is not removed, matching the lifetime of the run.
func CloneGitHub(url string) (string, error) {
	dir, err := os.MkdirTemp("", "autodocs-clone-*")
	if err != nil {
		return "", err
	}

	cmd := exec.Command("git", "clone", "--depth", "1", url, dir)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("cloning %s: %v: %s", url, err, out)
	}
	return dir, nil
}
