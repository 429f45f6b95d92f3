package game

import "sort"

// Scheduler 单线程延迟任务队列，由宿主每帧推进
//
// 每个任务记录创建时的纪元（epoch），Reset() 递增纪元并丢弃全部待执行任务，
// 旧纪元的延续即使被外部持有也不会再执行。
// 执行顺序：到期时间优先，同一时间按加入顺序。
type Scheduler struct {
	now   float64
	epoch uint64
	seq   uint64
	tasks []*scheduledTask
}

type scheduledTask struct {
	due       float64
	seq       uint64
	epoch     uint64
	fn        func()
	cancelled bool
}

// TaskHandle 已调度任务的句柄
type TaskHandle struct {
	task *scheduledTask
}

// Cancel 取消任务；任务已执行或已取消时是空操作
func (h TaskHandle) Cancel() {
	if h.task != nil {
		h.task.cancelled = true
	}
}

// ChainStep 延迟链中的一步：先执行 Do，再等待 Delay 秒进入下一步
type ChainStep struct {
	Do    func()
	Delay float64
}

// NewScheduler 创建调度器
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now 调度器内部时钟（秒）
func (s *Scheduler) Now() float64 {
	return s.now
}

// Epoch 当前纪元
func (s *Scheduler) Epoch() uint64 {
	return s.epoch
}

// IsCurrent 指定纪元是否仍然有效
func (s *Scheduler) IsCurrent(epoch uint64) bool {
	return s.epoch == epoch
}

// Pending 待执行任务数（不含已取消的任务）
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// After 在 delay 秒后执行 fn
// delay <= 0 的任务在下一次 Update 时执行
func (s *Scheduler) After(delay float64, fn func()) TaskHandle {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	task := &scheduledTask{
		due:   s.now + delay,
		seq:   s.seq,
		epoch: s.epoch,
		fn:    fn,
	}
	s.tasks = append(s.tasks, task)
	return TaskHandle{task: task}
}

// Update 推进时钟并执行所有到期任务
// 执行期间新加入且已到期的任务在本次调用内一并执行
func (s *Scheduler) Update(deltaTime float64) {
	s.now += deltaTime
	for {
		task := s.popDue()
		if task == nil {
			return
		}
		if task.cancelled || task.epoch != s.epoch {
			continue
		}
		task.fn()
	}
}

// popDue 取出最早到期的任务
func (s *Scheduler) popDue() *scheduledTask {
	if len(s.tasks) == 0 {
		return nil
	}
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].due != s.tasks[j].due {
			return s.tasks[i].due < s.tasks[j].due
		}
		return s.tasks[i].seq < s.tasks[j].seq
	})
	first := s.tasks[0]
	if first.due > s.now {
		return nil
	}
	s.tasks = s.tasks[1:]
	return first
}

// Reset 作废所有待执行任务
func (s *Scheduler) Reset() {
	s.epoch++
	s.tasks = nil
}

// ChainHandle 延迟链的句柄
type ChainHandle struct {
	cancelled bool
}

// Cancel 中止延迟链：尚未执行的步骤和 onDone 都不会再执行
func (h *ChainHandle) Cancel() {
	if h != nil {
		h.cancelled = true
	}
}

// Cancelled 延迟链是否已被中止
func (h *ChainHandle) Cancelled() bool {
	return h != nil && h.cancelled
}

// RunChain 依次执行延迟链
// 第一步同步执行；Delay 为 0 的步骤之间同步衔接；全部完成后调用 onDone（可为 nil）。
// Reset() 或 Cancel() 之后链条中止，onDone 不会被调用。
func (s *Scheduler) RunChain(steps []ChainStep, onDone func()) *ChainHandle {
	epoch := s.epoch
	handle := &ChainHandle{}
	var run func(i int)
	run = func(i int) {
		for ; i < len(steps); i++ {
			if s.epoch != epoch || handle.cancelled {
				return
			}
			if steps[i].Do != nil {
				steps[i].Do()
			}
			if steps[i].Delay > 0 {
				next := i + 1
				s.After(steps[i].Delay, func() { run(next) })
				return
			}
		}
		if s.epoch == epoch && !handle.cancelled && onDone != nil {
			onDone()
		}
	}
	run(0)
	return handle
}
