package loader

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/sync/singleflight"
)

// FileIdentity 來源檔身分鍵：路徑 + 修改時間 + 大小。
// 檔案換新（重新匯出覆蓋）時鍵改變，快取整份汰換。
func FileIdentity(path string) (string, error) {
	st, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat source file: %w", err)
	}
	return fmt.Sprintf("%s|%d|%d", path, st.ModTime().UnixNano(), st.Size()), nil
}

// Cache 單份常駐的載入快取：同鍵命中直接回傳，換鍵重建並取代舊份。
// 併發同鍵載入以 singleflight 收斂成一次 build，不會重複解析來源檔。
type Cache[T any] struct {
	sf singleflight.Group

	mu  sync.RWMutex
	key string
	val T
	set bool
}

// Get 以 key 取快取值；未命中時呼叫 build 建立並常駐
func (c *Cache[T]) Get(key string, build func() (T, error)) (T, error) {
	c.mu.RLock()
	if c.set && c.key == key {
		v := c.val
		c.mu.RUnlock()
		return v, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.sf.Do(key, func() (any, error) {
		// singleflight 排隊期間可能已由前一班完成
		c.mu.RLock()
		if c.set && c.key == key {
			v := c.val
			c.mu.RUnlock()
			return v, nil
		}
		c.mu.RUnlock()

		val, err := build()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.key, c.val, c.set = key, val, true
		c.mu.Unlock()
		return val, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
