package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/mersinbot/masters-backend/internal/models"
)

// UserCache — ограниченный по размеру кеш карточек пользователей с TTL.
// Прикрывает базу от повторных запросов идентификации на каждое сообщение.
// Кеш best-effort: промах всегда прозрачно уходит в базу, при рестарте
// содержимое теряется без последствий.
//
// Политика вытеснения: по возрасту — лениво при чтении, по ёмкости —
// удаляется единственная самая старая запись в порядке вставки. Get и
// перезапись продвигают запись в конец порядка, но таймстемп TTL при
// этом не обновляется.
type UserCache struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int

	entries map[int64]*list.Element // telegram id -> элемент order
	order   *list.List              // от старых к новым
	byUser  map[int64]int64         // внутренний user id -> telegram id

	now func() time.Time // подменяется в тестах
}

type userEntry struct {
	telegramID int64
	record     *models.UserRecord
	insertedAt time.Time
}

// NewUserCache создаёт кеш с заданными TTL и ёмкостью.
func NewUserCache(ttl time.Duration, capacity int) *UserCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &UserCache{
		ttl:      ttl,
		capacity: capacity,
		entries:  make(map[int64]*list.Element),
		order:    list.New(),
		byUser:   make(map[int64]int64),
		now:      time.Now,
	}
}

// Get возвращает карточку, если запись моложе TTL. Просроченная запись
// удаляется, возвращается промах. Попадание продвигает запись в конец
// порядка вытеснения.
func (c *UserCache) Get(telegramID int64) (*models.UserRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[telegramID]
	if !ok {
		return nil, false
	}

	entry := el.Value.(*userEntry)
	if c.now().Sub(entry.insertedAt) >= c.ttl {
		c.removeLocked(el)
		return nil, false
	}

	c.order.MoveToBack(el)
	return entry.record, true
}

// Set вставляет или перезаписывает карточку с текущим таймстемпом.
// При превышении ёмкости вытесняется самая старая запись.
func (c *UserCache) Set(telegramID int64, record *models.UserRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[telegramID]; ok {
		old := el.Value.(*userEntry)
		delete(c.byUser, old.record.UserID)
		el.Value = &userEntry{telegramID: telegramID, record: record, insertedAt: c.now()}
		c.order.MoveToBack(el)
	} else {
		el = c.order.PushBack(&userEntry{telegramID: telegramID, record: record, insertedAt: c.now()})
		c.entries[telegramID] = el
	}
	c.byUser[record.UserID] = telegramID

	if c.order.Len() > c.capacity {
		if oldest := c.order.Front(); oldest != nil {
			c.removeLocked(oldest)
		}
	}
}

// Invalidate безусловно удаляет запись. Вызывается после любой записи,
// способной изменить кешируемые поля: смена роли, статуса, языка.
func (c *UserCache) Invalidate(telegramID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[telegramID]; ok {
		c.removeLocked(el)
	}
}

// InvalidateUserID удаляет запись по внутреннему идентификатору через
// вторичный индекс, без линейного скана кеша.
func (c *UserCache) InvalidateUserID(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	telegramID, ok := c.byUser[userID]
	if !ok {
		return
	}
	if el, ok := c.entries[telegramID]; ok {
		c.removeLocked(el)
	}
}

// Clear полностью очищает кеш.
func (c *UserCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[int64]*list.Element)
	c.byUser = make(map[int64]int64)
	c.order.Init()
}

// Len возвращает текущее число записей.
func (c *UserCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *UserCache) removeLocked(el *list.Element) {
	entry := el.Value.(*userEntry)
	delete(c.entries, entry.telegramID)
	delete(c.byUser, entry.record.UserID)
	c.order.Remove(el)
}
