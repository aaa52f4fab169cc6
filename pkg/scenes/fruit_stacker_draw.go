package scenes

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/matheo-lm/xs-arcade/pkg/components"
	"github.com/matheo-lm/xs-arcade/pkg/config"
	"github.com/matheo-lm/xs-arcade/pkg/utils"
)

// 场景配色
var (
	skyTopColor      = color.RGBA{0x8f, 0xd3, 0xff, 0xff}
	skyBottomColor   = color.RGBA{0xff, 0xf1, 0xc9, 0xff}
	topBandColor     = color.RGBA{0x1d, 0x2a, 0x3a, 0xd8}
	lossLineColor    = color.RGBA{0xff, 0xff, 0xff, 0xb0}
	lossLineHitColor = color.RGBA{0xff, 0x3b, 0x4f, 0xff}
	guideColor       = color.RGBA{0xff, 0xff, 0xff, 0x50}
	cooldownColor    = color.RGBA{0xff, 0xff, 0xff, 0xe0}
	queuedColor      = color.RGBA{0x5c, 0xe0, 0x7a, 0xff}
	outlineColor     = color.RGBA{0x00, 0x00, 0x00, 0x40}
)

const (
	skyBands      = 24  // 天空渐变的色带数量
	dashLength    = 10  // 虚线实线段长度
	dashGap       = 8   // 虚线间隔
	arcSegments   = 32  // 冷却圆弧的折线段数
	previewAlpha  = 0.5 // 冷却中预览水果的不透明度
	cooldownInset = 6.0 // 冷却圆弧在预览水果外的距离
)

// drawBackground 绘制天空渐变、顶部暗带与警戒线
func (s *FruitStackerScene) drawBackground(screen *ebiten.Image) {
	bandHeight := config.BoardHeight / skyBands
	for i := 0; i < skyBands; i++ {
		c := utils.LerpColor(skyTopColor, skyBottomColor, float64(i)/(skyBands-1))
		vector.DrawFilledRect(screen, 0, float32(float64(i)*bandHeight),
			float32(config.BoardWidth), float32(bandHeight+1), c, false)
	}

	lineY := s.tuning.LossLineY
	vector.DrawFilledRect(screen, 0, 0, float32(config.BoardWidth), float32(lineY), topBandColor, false)

	lineColor := lossLineColor
	if s.session.Simulation().Mode() == components.RunModeLoss {
		lineColor = lossLineHitColor
	}
	drawDashedLine(screen, 0, lineY, config.BoardWidth, lineY, 2, lineColor)
}

// drawBodies 绘制所有水果
func (s *FruitStackerScene) drawBodies(screen *ebiten.Image) {
	for _, body := range s.session.Simulation().Bodies() {
		s.drawFruit(screen, body.Tier, body.X, body.Y, 1, 1)
	}
}

// drawFruit 绘制一个双色圆形水果与其缩写
//
// 参数：
//   - tier: 等级索引
//   - x, y: 圆心
//   - scale: 相对绘制半径的缩放
//   - alpha: 不透明度 0~1
func (s *FruitStackerScene) drawFruit(screen *ebiten.Image, tier int, x, y, scale, alpha float64) {
	info := s.tiers.Tier(tier)
	palette := s.palettes[tier]
	r := info.Radius * info.DrawScale * scale

	vector.DrawFilledCircle(screen, float32(x), float32(y), float32(r),
		utils.WithAlpha(palette.body, alpha), true)
	vector.DrawFilledCircle(screen, float32(x-r*0.3), float32(y-r*0.3), float32(r*0.45),
		utils.WithAlpha(palette.highlight, alpha*0.9), true)
	vector.StrokeCircle(screen, float32(x), float32(y), float32(r), 1.5,
		utils.WithAlpha(outlineColor, alpha), true)

	if scale >= 0.6 && info.Label != "" {
		// 调试字体每个字符 6x16 像素
		ebitenutil.DebugPrintAt(screen, info.Label, int(x)-3*len(info.Label), int(y)-8)
	}
}

// drawLauncher 绘制发射器：引导线、下一个水果预览与冷却圆弧
func (s *FruitStackerScene) drawLauncher(screen *ebiten.Image) {
	if !s.session.Simulation().World().IsPlaying() {
		return
	}

	drop := s.session.Simulation().Drop()
	x, y := drop.TargetX(), drop.LauncherY()

	drawDashedLine(screen, x, s.tuning.LossLineY, x, config.BoardHeight, 1, guideColor)

	alpha := 1.0
	if !drop.CanDrop() {
		alpha = previewAlpha
	}
	s.drawFruit(screen, drop.NextTier(), x, y, 1, alpha)

	if ratio := drop.CooldownRatio(); ratio < 1 {
		arcColor := cooldownColor
		if drop.Queued() {
			arcColor = queuedColor
		}
		r := s.tiers.Radius(drop.NextTier())*s.tiers.Tier(drop.NextTier()).DrawScale + cooldownInset
		drawArc(screen, x, y, r, -math.Pi/2, -math.Pi/2+2*math.Pi*ratio, 3, arcColor)
	}
}

// drawEffects 绘制圆环、火花与飘字
func (s *FruitStackerScene) drawEffects(screen *ebiten.Image) {
	world := s.session.Simulation().World()
	fallback := color.RGBA{0xff, 0xff, 0xff, 0xff}

	for _, ring := range world.Rings.Entities() {
		c := utils.WithAlpha(utils.MustParseHexColor(ring.Color, fallback), ring.Life)
		vector.StrokeCircle(screen, float32(ring.X), float32(ring.Y), float32(ring.Radius),
			float32(ring.LineWidth), c, true)
	}

	for _, spark := range world.Sparks.Entities() {
		c := utils.WithAlpha(utils.MustParseHexColor(spark.Color, fallback), spark.Life)
		size := math.Max(0.5, spark.Size*spark.Life)
		vector.DrawFilledCircle(screen, float32(spark.X), float32(spark.Y), float32(size), c, true)
	}

	for _, text := range world.Texts.Entities() {
		// 调试字体不支持透明度，生命值过低时不再绘制
		if text.Life < 0.15 {
			continue
		}
		ebitenutil.DebugPrintAt(screen, text.Text, int(text.X)-3*len(text.Text), int(text.Y)-8)
	}
}

// drawDashedLine 绘制虚线
func drawDashedLine(screen *ebiten.Image, x0, y0, x1, y1, width float64, c color.Color) {
	length := math.Hypot(x1-x0, y1-y0)
	if length == 0 {
		return
	}
	dx, dy := (x1-x0)/length, (y1-y0)/length

	for d := 0.0; d < length; d += dashLength + dashGap {
		end := math.Min(d+dashLength, length)
		vector.StrokeLine(screen,
			float32(x0+dx*d), float32(y0+dy*d),
			float32(x0+dx*end), float32(y0+dy*end),
			float32(width), c, true)
	}
}

// drawArc 用折线近似绘制圆弧（角度为弧度，顺时针为正）
func drawArc(screen *ebiten.Image, cx, cy, r, from, to, width float64, c color.Color) {
	sweep := to - from
	if sweep <= 0 {
		return
	}
	segments := max(1, int(math.Ceil(arcSegments*sweep/(2*math.Pi))))
	step := sweep / float64(segments)

	px, py := cx+r*math.Cos(from), cy+r*math.Sin(from)
	for i := 1; i <= segments; i++ {
		angle := from + step*float64(i)
		nx, ny := cx+r*math.Cos(angle), cy+r*math.Sin(angle)
		vector.StrokeLine(screen, float32(px), float32(py), float32(nx), float32(ny), float32(width), c, true)
		px, py = nx, ny
	}
}
