package systems

import "github.com/matheo-lm/xs-arcade/pkg/components"

// Listener 接收模拟向外发出的事件
//
// 回调在 Step 内同步执行，不得重入模拟。
type Listener interface {
	// OnScoreChange 分数变化（包括重置为 0）
	OnScoreChange(score int)
	// OnGameOver 一局结束，每局只触发一次
	OnGameOver(finalScore int, outcome components.RunMode)
}

// ListenerFuncs 用普通函数实现 Listener，未设置的回调被忽略
type ListenerFuncs struct {
	ScoreChange func(score int)
	GameOver    func(finalScore int, outcome components.RunMode)
}

func (l ListenerFuncs) OnScoreChange(score int) {
	if l.ScoreChange != nil {
		l.ScoreChange(score)
	}
}

func (l ListenerFuncs) OnGameOver(finalScore int, outcome components.RunMode) {
	if l.GameOver != nil {
		l.GameOver(finalScore, outcome)
	}
}
