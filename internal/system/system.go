package system

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a directory has no file of the wanted type.
var ErrNotFound = errors.New("no matching file")

// InitResourceLimits raises the open file limit, which the PNG frame writer
// can exhaust on long renders.
func InitResourceLimits(logger *zap.SugaredLogger) {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		logger.Warnf("[!] Не удалось получить лимит файлов: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		logger.Warnf("[!] Не удалось установить лимит файлов: %v", err)
	} else {
		logger.Debugf("[*] Системный лимит открытых файлов увеличен до %d", rLimit.Cur)
	}
}

// FindLatestFile returns the most recently modified file in dir whose
// extension is one of exts, compared case-insensitively.
func FindLatestFile(dir string, exts ...string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !hasExt(f.Name(), exts) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if latestFile == "" || info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", errors.Wrapf(ErrNotFound, "в папке %s нет файлов %s", dir, strings.Join(exts, ", "))
	}

	return latestFile, nil
}

func hasExt(name string, exts []string) bool {
	name = strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(name, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

var (
	encoderOnce sync.Once
	encoderName string
)

// GetBestH264Encoder picks a hardware H.264 encoder when the local ffmpeg
// has one and falls back to libx264. The probe runs once per process.
func GetBestH264Encoder() string {
	encoderOnce.Do(func() {
		encoderName = pickEncoder(func() (string, error) {
			out, err := exec.Command("ffmpeg", "-hide_banner", "-encoders").CombinedOutput()
			return string(out), err
		})
	})
	return encoderName
}

// pickEncoder checks the encoder list in priority order:
// VideoToolbox (macOS), NVENC (NVIDIA), then software libx264.
func pickEncoder(list func() (string, error)) string {
	out, err := list()
	if err != nil {
		return "libx264"
	}
	for _, enc := range []string{"h264_videotoolbox", "h264_nvenc"} {
		if strings.Contains(out, enc) {
			return enc
		}
	}
	return "libx264"
}
