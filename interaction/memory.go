package interaction

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopstream/reco/core"
)

// MemoryLog 是内存实现的行为日志：只追加的事件序列 + 每用户的商品集合索引。
// 并发 Append 安全；读方拿到的是一致的快照。进程重启后数据丢失。
type MemoryLog struct {
	mu     sync.RWMutex
	events []core.Interaction
	byUser map[string]map[string]struct{} // userID -> 交互过的商品 ID 集合
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{
		byUser: make(map[string]map[string]struct{}),
	}
}

// Append 追加一条行为事件。不校验商品是否存在于目录（允许悬挂引用），
// 未填时间戳时打当前时间。
func (l *MemoryLog) Append(_ context.Context, in *core.Interaction) error {
	evt := *in
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, evt)
	set, ok := l.byUser[evt.UserID]
	if !ok {
		set = make(map[string]struct{})
		l.byUser[evt.UserID] = set
	}
	set[evt.ProductID] = struct{}{}
	return nil
}

// ProductsFor 返回用户交互过的去重商品 ID，按 ID 升序。
// 集合迭代顺序不可依赖，这里显式排序，保证个性化召回可复现。
func (l *MemoryLog) ProductsFor(_ context.Context, userID string) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	set, ok := l.byUser[userID]
	if !ok {
		return nil, nil
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Len 返回已记录的事件总数。
func (l *MemoryLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

var _ core.InteractionLog = (*MemoryLog)(nil)
