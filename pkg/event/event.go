// Package event 提供单线程的类型化事件分发器
// 核心逻辑只发出通知，从不读取订阅方（UI、音效）的状态
package event

// EventType 事件类型
type EventType string

const (
	WaveChanged       EventType = "wave_changed"       // Data: WaveChangedData
	StateChanged      EventType = "state_changed"      // Data: StateChangedData
	Message           EventType = "message"            // Data: string
	ScoreChanged      EventType = "score_changed"      // Data: int
	KillsChanged      EventType = "kills_changed"      // Data: int
	HealthChanged     EventType = "health_changed"     // Data: HealthChangedData
	ExperienceChanged EventType = "experience_changed" // Data: ExperienceChangedData
	CoinsChanged      EventType = "coins_changed"      // Data: int
	LevelUp           EventType = "level_up"           // Data: int（新等级）
	EnemySpawned      EventType = "enemy_spawned"      // Data: EnemyData
	EnemyKilled       EventType = "enemy_killed"       // Data: EnemyData
	SpellCast         EventType = "spell_cast"         // Data: nil
	CoinCollected     EventType = "coin_collected"     // Data: int（本次拾取数量）
	Victory           EventType = "victory"            // Data: string（判定来源）
	GameOver          EventType = "game_over"          // Data: string（原因）
)

// Event 事件
type Event struct {
	Type EventType
	Data interface{}
}

// WaveChangedData 波次变化
type WaveChangedData struct {
	Wave          int // 本局第几波（从 1 开始）
	AbsoluteIndex int // 绝对波次编号
	TotalWaves    int
}

// StateChangedData 状态机状态变化
type StateChangedData struct {
	From        string
	To          string
	Description string
}

// HealthChangedData 生命值变化
type HealthChangedData struct {
	Current float64
	Max     float64
}

// ExperienceChangedData 经验变化
type ExperienceChangedData struct {
	Level            int
	Experience       int
	ExperienceToNext int
}

// EnemyData 敌人生成或死亡
type EnemyData struct {
	Entity     uint64
	TemplateID string
	Tier       string
}

// Listener 订阅者接口
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc 函数适配器
type ListenerFunc func(e Event)

// OnEvent 实现 Listener
func (f ListenerFunc) OnEvent(e Event) {
	f(e)
}

// Subscription 订阅句柄，用于取消订阅
type Subscription struct {
	eventType EventType
	id        uint64
}

type subscriber struct {
	id       uint64
	listener Listener
}

// Dispatcher 事件分发器
type Dispatcher struct {
	listeners map[EventType][]subscriber
	nextID    uint64
}

// NewDispatcher 创建分发器
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]subscriber),
	}
}

// Subscribe 订阅事件
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) Subscription {
	d.nextID++
	d.listeners[eventType] = append(d.listeners[eventType], subscriber{id: d.nextID, listener: listener})
	return Subscription{eventType: eventType, id: d.nextID}
}

// SubscribeFunc 以函数形式订阅事件
func (d *Dispatcher) SubscribeFunc(eventType EventType, fn func(e Event)) Subscription {
	return d.Subscribe(eventType, ListenerFunc(fn))
}

// Unsubscribe 取消订阅；重复取消是空操作
func (d *Dispatcher) Unsubscribe(sub Subscription) {
	list := d.listeners[sub.eventType]
	for i, s := range list {
		if s.id == sub.id {
			d.listeners[sub.eventType] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Dispatch 同步分发事件
// 分发期间新增的订阅者不会收到本次事件
func (d *Dispatcher) Dispatch(e Event) {
	if d == nil {
		return
	}
	list := d.listeners[e.Type]
	for _, s := range list {
		s.listener.OnEvent(e)
	}
}

// Emit Dispatch 的便捷形式
func (d *Dispatcher) Emit(eventType EventType, data interface{}) {
	d.Dispatch(Event{Type: eventType, Data: data})
}

// Count 返回某类事件的订阅者数量
func (d *Dispatcher) Count(eventType EventType) int {
	return len(d.listeners[eventType])
}
