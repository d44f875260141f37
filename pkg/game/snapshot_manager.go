package game

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 存储路径常量
const (
	snapshotObject = "snapshots"
	snapshotIndex  = "index"
)

// ErrSnapshotStorageUnavailable gdata 存储不可用（降级模式）
var ErrSnapshotStorageUnavailable = errors.New("snapshot storage unavailable")

// SnapshotIndex 已导出快照的索引，按导出顺序排列
type SnapshotIndex struct {
	Entries []SnapshotEntry `yaml:"entries"`
}

// SnapshotEntry 单个快照的元数据
type SnapshotEntry struct {
	Key       string    `yaml:"key"`       // 存储键，含扩展名
	Width     int       `yaml:"width"`     // 图像宽度
	Height    int       `yaml:"height"`    // 图像高度
	CreatedAt time.Time `yaml:"createdAt"` // 导出时间
}

// SnapshotManager 快照导出管理器
//
// 把合成画面编码为 WebP（nativewebp，无损）或 PNG，
// 存入 gdata 跨平台应用数据目录，并维护一份 YAML 索引。
type SnapshotManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，导出会失败但不影响预览）
	format       string         // "webp" 或 "png"
	now          func() time.Time
}

// NewSnapshotManager 创建快照管理器
//
// 参数：
//   - gdataManager: gdata 存储管理器，可为 nil
//   - format: 编码格式，"webp" 或 "png"
func NewSnapshotManager(gdataManager *gdata.Manager, format string) *SnapshotManager {
	return &SnapshotManager{
		gdataManager: gdataManager,
		format:       format,
		now:          time.Now,
	}
}

// Save 按默认格式编码并保存图像，返回存储键
func (sm *SnapshotManager) Save(name string, img image.Image) (string, error) {
	return sm.SaveAs(name, img, sm.format)
}

// SaveAs 按指定格式编码并保存图像，返回存储键（名称加扩展名）
func (sm *SnapshotManager) SaveAs(name string, img image.Image, format string) (string, error) {
	if sm.gdataManager == nil {
		return "", ErrSnapshotStorageUnavailable
	}

	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, img, format); err != nil {
		return "", err
	}

	key := name + "." + format
	if err := sm.gdataManager.SaveObjectProp(snapshotObject, key, buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to save snapshot %s: %w", key, err)
	}

	index, err := sm.List()
	if err != nil {
		log.Printf("[Snapshot] Warning: index unreadable, rebuilding: %v", err)
		index = &SnapshotIndex{}
	}
	index.add(SnapshotEntry{
		Key:       key,
		Width:     img.Bounds().Dx(),
		Height:    img.Bounds().Dy(),
		CreatedAt: sm.now(),
	})
	if err := sm.saveIndex(index); err != nil {
		return key, err
	}

	log.Printf("[Snapshot] 已导出 %s (%d bytes)", key, buf.Len())
	return key, nil
}

// Load 读取并解码已保存的快照
func (sm *SnapshotManager) Load(key string) (image.Image, error) {
	if sm.gdataManager == nil {
		return nil, ErrSnapshotStorageUnavailable
	}
	if !sm.gdataManager.ObjectPropExists(snapshotObject, key) {
		return nil, fmt.Errorf("snapshot %s not found", key)
	}

	data, err := sm.gdataManager.LoadObjectProp(snapshotObject, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", key, err)
	}
	return DecodeSheet(key, bytes.NewReader(data))
}

// List 返回快照索引，不存在时返回空索引
func (sm *SnapshotManager) List() (*SnapshotIndex, error) {
	if sm.gdataManager == nil {
		return nil, ErrSnapshotStorageUnavailable
	}
	if !sm.gdataManager.ObjectPropExists(snapshotObject, snapshotIndex) {
		return &SnapshotIndex{}, nil
	}

	data, err := sm.gdataManager.LoadObjectProp(snapshotObject, snapshotIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot index: %w", err)
	}

	index := &SnapshotIndex{}
	if err := yaml.Unmarshal(data, index); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot index: %w", err)
	}
	return index, nil
}

func (sm *SnapshotManager) saveIndex(index *SnapshotIndex) error {
	data, err := yaml.Marshal(index)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot index: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(snapshotObject, snapshotIndex, data); err != nil {
		return fmt.Errorf("failed to save snapshot index: %w", err)
	}
	return nil
}

// add 添加条目，同名条目被替换并移到末尾
func (idx *SnapshotIndex) add(entry SnapshotEntry) {
	kept := idx.Entries[:0]
	for _, e := range idx.Entries {
		if e.Key != entry.Key {
			kept = append(kept, e)
		}
	}
	idx.Entries = append(kept, entry)
}

// EncodeSnapshot 按格式编码图像
func EncodeSnapshot(w io.Writer, img image.Image, format string) error {
	switch format {
	case "webp":
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("WebP encode: %w", err)
		}
	case "png":
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("PNG encode: %w", err)
		}
	default:
		return fmt.Errorf("unsupported snapshot format %q", format)
	}
	return nil
}

// SnapshotName 生成快照名，例如 run_down_f2_20261015_201500
func SnapshotName(action, direction, label string, at time.Time) string {
	return strings.ToLower(fmt.Sprintf("%s_%s_%s_%s", action, direction, label, at.Format("20060102_150405")))
}
