package capstore

import (
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/multierr"

	"github.com/dep2p/go-entitycaps/pkg/interfaces"
	"github.com/dep2p/go-entitycaps/pkg/lib/log"
	"github.com/dep2p/go-entitycaps/pkg/types"
)

var logger = log.Logger("caps/capstore")

// keyPrefix 条目键前缀
const keyPrefix = "c/"

// 确保实现了接口
var _ interfaces.PersistentCache = (*Store)(nil)

// Config 存储配置
type Config struct {
	// Path 数据目录路径（必需）
	Path string

	// SyncWrites 是否同步写入
	// 启用后每次写入都会同步到磁盘，更安全但性能较低
	SyncWrites bool

	// Quiet 是否静默 BadgerDB 内部日志
	Quiet bool
}

// Validate 验证配置
func (c Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidConfig)
	}
	return nil
}

// Store BadgerDB 持久化能力缓存
type Store struct {
	db     *badger.DB
	closed atomic.Bool
}

// Open 打开持久化缓存
//
// 数据目录不存在时自动创建。
func Open(cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create capstore dir: %w", err)
	}

	opts := badger.DefaultOptions(cfg.Path).
		WithSyncWrites(cfg.SyncWrites)
	if cfg.Quiet {
		opts = opts.WithLogger(nil)
	} else {
		opts = opts.WithLogger(&badgerLogger{})
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open capstore: %w", err)
	}

	return &Store{db: db}, nil
}

// AddEntry 持久化一条缓存条目
func (s *Store) AddEntry(key types.CapsKey, info *types.DiscoverInfo) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if info == nil {
		return nil
	}

	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("encode entry %s: %w", key, err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(entryKey(key), data)
	})
}

// Replay 回放持久化的全部条目
//
// 对每条可解码的条目调用 put；单条损坏数据跳过并累积错误，
// 扫描完成后一并返回。
func (s *Store) Replay(put func(key types.CapsKey, info *types.DiscoverInfo)) error {
	if s.closed.Load() {
		return ErrClosed
	}

	var decodeErrs error

	scanErr := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			node := string(item.Key()[len(keyPrefix):])

			err := item.Value(func(val []byte) error {
				var info types.DiscoverInfo
				if err := json.Unmarshal(val, &info); err != nil {
					decodeErrs = multierr.Append(decodeErrs,
						fmt.Errorf("decode entry %q: %w", node, err))
					return nil
				}
				put(types.ParseCapsKey(node), &info)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	return multierr.Append(scanErr, decodeErrs)
}

// Close 关闭存储
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}

	logger.Debug("正在关闭 capstore")
	return s.db.Close()
}

// entryKey 构造带前缀的条目键
func entryKey(key types.CapsKey) []byte {
	return []byte(keyPrefix + key.String())
}

// badgerLogger 适配器：将 BadgerDB 日志接入统一日志
type badgerLogger struct{}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	logger.Debug(fmt.Sprintf(format, args...))
}
