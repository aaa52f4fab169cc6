package config

// 布局配置常量
// 所有坐标使用画布坐标系：原点在左上角，+x 向右，+y 向下，单位为像素。
// 警戒线、留白等阈值都按这些单位调校，渲染层不得改变坐标约定。

// 窗口与棋盘
const (
	// GameWindowWidth 逻辑屏幕宽度（Ebitengine 自动缩放到实际窗口）
	GameWindowWidth = 480

	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 720

	// BoardWidth 棋盘宽度，与逻辑屏幕一致
	BoardWidth = float64(GameWindowWidth)

	// BoardHeight 棋盘高度，与逻辑屏幕一致
	BoardHeight = float64(GameWindowHeight)
)

// HUD 布局
const (
	// HUDPanelX, HUDPanelY HUD 面板左上角
	HUDPanelX = 6.0
	HUDPanelY = 8.0

	// HUDPanelWidth, HUDPanelHeight HUD 面板尺寸
	HUDPanelWidth  = 174.0
	HUDPanelHeight = 47.0

	// NextPreviewInset 右上角“下一个”预览水果距右边缘的距离
	NextPreviewInset = 36.0

	// NextPreviewY 预览水果中心Y坐标
	NextPreviewY = 32.0

	// NextPreviewScale 预览水果缩放
	NextPreviewScale = 0.62
)

// 游戏标识
const (
	// FruitStackerGameID Fruit Stacker 的游戏ID（存档和徽章使用）
	FruitStackerGameID = "fruit-stacker"

	// FruitStackerMasterBadge 获得 3 星时解锁的徽章
	FruitStackerMasterBadge = "fruit-stacker-master"
)
