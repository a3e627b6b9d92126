// Package desktop builds the fyne window of the loan calculator.
package desktop

import (
	"context"
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/iwvelando/loan-calc/internal/calculator"
	"github.com/iwvelando/loan-calc/internal/storage"
	"github.com/iwvelando/loan-calc/pkg/constants"
	"github.com/iwvelando/loan-calc/pkg/format"
	"github.com/iwvelando/loan-calc/pkg/mathutil"
	"go.uber.org/zap"
)

// themePreference is the preferences key of the selected theme.
const themePreference = "theme"

// Options configures the window.
type Options struct {
	Width       float32
	Height      float32
	SliderWidth float32
	Theme       string // initial theme when none is remembered
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = constants.DefaultWindowWidth
	}
	if o.Height <= 0 {
		o.Height = constants.DefaultWindowHeight
	}
	if o.SliderWidth <= 0 {
		o.SliderWidth = constants.DefaultSliderWidth
	}
	o.Theme = normalizeTheme(o.Theme)
	return o
}

// inputSlider ties one slider to its field of calculator.Inputs.
type inputSlider struct {
	slider *widget.Slider
	value  *widget.Label
	field  *float64
	render func(float64) string
}

// App is the calculator window together with its state.
type App struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  *zap.Logger
	store   storage.Store
	calc    *calculator.Calculator

	sliders     []*inputSlider
	results     []*widget.Label
	themeToggle *widget.Check
}

// New loads the saved inputs from store and builds the window. A nil store
// falls back to the application preferences.
func New(fyneApp fyne.App, store storage.Store, formatter *format.Formatter, opts Options, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = NewPreferencesStore(fyneApp.Preferences())
	}
	opts = opts.withDefaults()

	a := &App{
		fyneApp: fyneApp,
		logger:  logger,
		store:   store,
		calc:    calculator.New(formatter),
	}
	a.calc.SetInputs(calculator.Load(context.Background(), store, constants.AppKey, logger))

	a.applyTheme(fyneApp.Preferences().StringWithFallback(themePreference, opts.Theme))

	a.window = fyneApp.NewWindow("Loan Calc")
	a.window.SetMainMenu(a.buildMenu())
	a.window.SetContent(a.buildContent(opts))
	a.window.Resize(fyne.NewSize(opts.Width, opts.Height))

	fyneApp.Lifecycle().SetOnStopped(func() {
		if err := a.Save(context.Background()); err != nil {
			logger.Error("failed to save state",
				zap.String("op", "desktop.OnStopped"),
				zap.Error(err),
			)
		}
	})

	logger.Debug("window ready",
		zap.String("op", "desktop.New"),
		zap.Float64("loanAmount", a.calc.LoanAmount),
		zap.Float64("interestRate", a.calc.InterestRate),
		zap.Float64("loanPeriodYears", a.calc.LoanPeriodYears),
		zap.Float64("termPrice", a.calc.TermPrice),
	)

	return a
}

// Window returns the main window.
func (a *App) Window() fyne.Window {
	return a.window
}

// Inputs returns the current slider values.
func (a *App) Inputs() calculator.Inputs {
	return a.calc.Inputs
}

// Run shows the window and blocks until the application quits.
func (a *App) Run() {
	a.window.ShowAndRun()
}

// Save stores the current inputs under the application key.
func (a *App) Save(ctx context.Context) error {
	if err := calculator.Save(ctx, a.store, constants.AppKey, a.calc.Inputs); err != nil {
		return err
	}
	a.logger.Debug("state saved",
		zap.String("op", "desktop.Save"),
	)
	return nil
}

func (a *App) buildMenu() *fyne.MainMenu {
	quit := fyne.NewMenuItem("Quit", func() {
		a.fyneApp.Quit()
	})
	quit.IsQuit = true

	return fyne.NewMainMenu(
		fyne.NewMenu("File", quit),
	)
}

func (a *App) buildContent(opts Options) fyne.CanvasObject {
	f := a.calc.Formatter()
	whole := func(v float64) string {
		return f.Integer(mathutil.RoundToInt64(v))
	}

	a.sliders = []*inputSlider{
		a.newInputSlider(0, constants.MaxLoanAmount, &a.calc.LoanAmount, whole),
		a.newInputSlider(0, constants.MaxInterestRate, &a.calc.InterestRate, func(v float64) string {
			return f.Decimal(v, 1, 3)
		}),
		a.newInputSlider(0, constants.MaxLoanPeriodYears, &a.calc.LoanPeriodYears, whole),
		a.newInputSlider(0, constants.MaxTermPrice, &a.calc.TermPrice, whole),
	}
	labels := []string{
		constants.LabelLoanAmount,
		constants.LabelInterestRate,
		constants.LabelLoanPeriodYears,
		constants.LabelTermPrice,
	}

	form := container.New(layout.NewFormLayout())
	for i, s := range a.sliders {
		sized := container.NewGridWrap(fyne.NewSize(opts.SliderWidth, s.slider.MinSize().Height), s.slider)
		form.Add(widget.NewLabel(labels[i]))
		form.Add(container.NewHBox(sized, s.value))
	}

	results := container.New(layout.NewFormLayout())
	a.results = nil
	for _, line := range a.calc.Display().Lines() {
		value := widget.NewLabelWithStyle(line.Value, fyne.TextAlignTrailing, fyne.TextStyle{Monospace: true})
		a.results = append(a.results, value)
		results.Add(widget.NewLabel(line.Label))
		results.Add(value)
	}

	a.themeToggle = widget.NewCheck("Dark mode", func(dark bool) {
		name := themeLight
		if dark {
			name = themeDark
		}
		a.applyTheme(name)
	})
	a.themeToggle.SetChecked(a.currentTheme() == themeDark)

	heading := widget.NewLabelWithStyle("Loan Calc", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	var footer fyne.CanvasObject = layout.NewSpacer()
	if source, err := url.Parse(constants.SourceURL); err == nil {
		footer = widget.NewHyperlink("Source code", source)
	}

	return container.NewVBox(
		container.NewHBox(heading, layout.NewSpacer(), a.themeToggle),
		form,
		widget.NewSeparator(),
		results,
		layout.NewSpacer(),
		footer,
	)
}

// newInputSlider builds a continuous slider over field. Only the label is
// rounded, so restored values keep their fractions.
func (a *App) newInputSlider(lo, hi float64, field *float64, render func(float64) string) *inputSlider {
	s := &inputSlider{
		slider: widget.NewSlider(lo, hi),
		value:  widget.NewLabel(""),
		field:  field,
		render: render,
	}
	s.slider.Step = 0
	s.slider.SetValue(*field)
	*field = s.slider.Value
	s.value.SetText(render(*field))

	s.slider.OnChanged = func(v float64) {
		*s.field = v
		s.value.SetText(s.render(v))
		a.refreshResults()
	}
	return s
}

// refreshResults recomputes the result and updates the three labels.
func (a *App) refreshResults() {
	for i, line := range a.calc.Display().Lines() {
		if i < len(a.results) {
			a.results[i].SetText(line.Value)
		}
	}
}

func (a *App) applyTheme(name string) {
	name = normalizeTheme(name)
	a.fyneApp.Settings().SetTheme(newVariantTheme(name))
	a.fyneApp.Preferences().SetString(themePreference, name)
}

func (a *App) currentTheme() string {
	if t, ok := a.fyneApp.Settings().Theme().(*variantTheme); ok {
		return t.Name()
	}
	return constants.DefaultTheme
}
