package scenes

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/matheo-lm/xs-arcade/pkg/components"
	"github.com/matheo-lm/xs-arcade/pkg/config"
	"github.com/matheo-lm/xs-arcade/pkg/utils"
)

var (
	hudPanelColor   = color.RGBA{0x10, 0x18, 0x24, 0xb0}
	overlayColor    = color.RGBA{0x08, 0x0c, 0x14, 0xb8}
	buttonColor     = color.RGBA{0xff, 0xb3, 0x2e, 0xff}
	starOnColor     = color.RGBA{0xff, 0xd5, 0x4a, 0xff}
	starOffColor    = color.RGBA{0xff, 0xff, 0xff, 0x40}
	overlayFadeInMs = 350.0
)

const (
	starOuterRadius = 22.0
	starInnerRadius = 9.5
	starSpacing     = 58.0
	starsY          = 360.0
	titleY          = 270
	maxStars        = 3
)

// whiteSubImage 填充三角形时使用的纯白纹理
var whiteSubImage *ebiten.Image

func solidTexture() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// drawHUD 绘制分数面板、下一个水果预览与静音提示
func (s *FruitStackerScene) drawHUD(screen *ebiten.Image) {
	sim := s.session.Simulation()

	vector.DrawFilledRect(screen, config.HUDPanelX, config.HUDPanelY,
		config.HUDPanelWidth, config.HUDPanelHeight, hudPanelColor, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SCORE %d", sim.Score()),
		int(config.HUDPanelX)+8, int(config.HUDPanelY)+6)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("BEST  %d", max(s.best, sim.Score())),
		int(config.HUDPanelX)+8, int(config.HUDPanelY)+24)

	nextX := config.BoardWidth - config.NextPreviewInset
	ebitenutil.DebugPrintAt(screen, "NEXT", int(nextX)-62, int(config.NextPreviewY)-8)
	s.drawFruit(screen, sim.Drop().NextTier(), nextX, config.NextPreviewY, config.NextPreviewScale, 1)

	statusY := int(config.HUDPanelY+config.HUDPanelHeight) + 4
	if s.session.Muted() {
		ebitenutil.DebugPrintAt(screen, "MUTED (M)", int(config.HUDPanelX)+8, statusY)
		statusY += 16
	}
	if s.session.Stepping() {
		ebitenutil.DebugPrintAt(screen, "STEP (. next, P resume)", int(config.HUDPanelX)+8, statusY)
	}
}

// drawOverlay 绘制一局结束的覆盖层：标题、得分、星级与再玩按钮
func (s *FruitStackerScene) drawOverlay(screen *ebiten.Image) {
	fade := 1.0
	if !s.endedAt.IsZero() {
		fade = utils.EaseOutCubic(float64(s.lastNow.Sub(s.endedAt).Milliseconds()) / overlayFadeInMs)
	}

	vector.DrawFilledRect(screen, 0, 0, float32(config.BoardWidth), float32(config.BoardHeight),
		utils.WithAlpha(overlayColor, fade), false)

	title := "GAME OVER"
	if s.session.Simulation().Mode() == components.RunModeWin {
		title = "PUMPKIN PARTY!"
	}
	centerX := int(config.BoardWidth / 2)
	ebitenutil.DebugPrintAt(screen, title, centerX-3*len(title), titleY)

	score := fmt.Sprintf("Score %d  /  Goal %d", s.session.Simulation().Score(), s.preset.GoalScore)
	ebitenutil.DebugPrintAt(screen, score, centerX-3*len(score), titleY+28)

	for i := 0; i < maxStars; i++ {
		c := starOffColor
		if i < s.lastStars {
			c = starOnColor
		}
		x := config.BoardWidth/2 + (float64(i)-1)*starSpacing
		drawStar(screen, x, starsY, starOuterRadius, starInnerRadius, utils.WithAlpha(c, fade))
	}

	left := (config.BoardWidth - playAgainWidth) / 2
	vector.DrawFilledRect(screen, float32(left), playAgainY, playAgainWidth, playAgainHeight,
		utils.WithAlpha(buttonColor, fade), true)
	label := "PLAY AGAIN (R)"
	ebitenutil.DebugPrintAt(screen, label, centerX-3*len(label), int(playAgainY+playAgainHeight/2)-8)
}

// drawStar 绘制实心五角星
func drawStar(screen *ebiten.Image, cx, cy, outer, inner float64, c color.RGBA) {
	var path vector.Path
	for i := 0; i < 10; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		angle := -math.Pi/2 + float64(i)*math.Pi/5
		x, y := float32(cx+r*math.Cos(angle)), float32(cy+r*math.Sin(angle))
		if i == 0 {
			path.MoveTo(x, y)
		} else {
			path.LineTo(x, y)
		}
	}
	path.Close()

	vertices, indices := path.AppendVerticesAndIndicesForFilling(nil, nil)
	// 顶点颜色为预乘 alpha 的 0~1 浮点数
	for i := range vertices {
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
		vertices[i].ColorR = float32(c.R) / 255
		vertices[i].ColorG = float32(c.G) / 255
		vertices[i].ColorB = float32(c.B) / 255
		vertices[i].ColorA = float32(c.A) / 255
	}
	screen.DrawTriangles(vertices, indices, solidTexture(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}
