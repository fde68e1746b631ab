package game

import (
	"time"
)

// SpeakingTimer 是发言倒计时的可取消句柄
// 它只负责按一秒分辨率向状态机的超时通道投递 Tick，
// 剩余时间由截止时刻对墙钟计算，进程被挂起后恢复时
// 按真实流逝时间结算，而不是按收到的 tick 数
type SpeakingTimer struct {
	PlayerID string
	Deadline time.Time

	done    chan struct{}
	stopped bool
}

func NewSpeakingTimer(playerID string, durationSec int, tmoCh chan<- RequestWrapper) *SpeakingTimer {
	st := &SpeakingTimer{
		PlayerID: playerID,
		Deadline: time.Now().Add(time.Duration(durationSec) * time.Second),
		done:     make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-st.done:
				return

			case <-ticker.C:
				tick := RequestWrapper{
					ReqType: REQ_TICK,
					Native:  &TickRequest{},
				}

				// 通道满时丢弃本次 tick，下一秒会补上
				select {
				case tmoCh <- tick:
				default:
				}
			}
		}
	}()

	return st
}

// Remaining 返回剩余秒数，永远不为负
func (st *SpeakingTimer) Remaining(now time.Time) int {
	left := st.Deadline.Sub(now)
	if left <= 0 {
		return 0
	}

	// 向上取整，刚启动的第一秒内仍显示完整时长
	return int((left + time.Second - 1) / time.Second)
}

// Stop 取消计时器，重复调用是安全的空操作
// 只允许从状态机协程调用
func (st *SpeakingTimer) Stop() {
	if st.stopped {
		return
	}

	st.stopped = true
	close(st.done)
}
