package templates

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoTemplates is returned by ScanDir when the folder holds no templates.
var ErrNoTemplates = errors.New("在所选文件夹中未找到 .yaml 或 .yml 文件")

// IsTemplateFile reports whether name has a template extension.
func IsTemplateFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

// ScanDir walks root recursively and returns the absolute path of every
// .yaml/.yml file in walk order.
func ScanDir(root string) ([]string, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("未选择自定义模板文件夹")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	st, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return nil, &fs.PathError{Op: "scan", Path: abs, Err: errors.New("not a directory")}
	}
	out := []string{}
	err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// unreadable subtrees are skipped, the root itself is not
			if p == abs {
				return err
			}
			return nil
		}
		if d.IsDir() || !IsTemplateFile(d.Name()) {
			return nil
		}
		out = append(out, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, ErrNoTemplates
	}
	return out, nil
}
