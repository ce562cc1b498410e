package service

import (
	"os"
	"path/filepath"
)

// removeUnderDir 删除存储在 baseDir 下的文件；文件不存在不算错误
func removeUnderDir(baseDir, storedPath string) error {
	fullPath := storedPath
	if !filepath.IsAbs(fullPath) {
		fullPath = filepath.Join(baseDir, storedPath)
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
