package web

import (
	"strings"
	"time"

	vm "github.com/ericfisherdev/openedx-plugin/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/openedx-plugin/internal/domain/model"
	"github.com/ericfisherdev/openedx-plugin/internal/plugin"
)

func toStatusPageViewModel(host PluginHost) vm.StatusPageViewModel {
	apps := host.Apps()

	page := vm.StatusPageViewModel{
		PlatformName: host.SettingString("PLATFORM_NAME", "Open edX"),
		ProjectType:  string(host.ProjectType()),
		Environment:  string(host.Environment()),
		Apps:         make([]vm.AppViewModel, 0, len(apps)),
	}

	for _, app := range apps {
		page.Apps = append(page.Apps, toAppViewModel(app, host.ProjectType()))
	}

	return page
}

func toAppViewModel(app plugin.AppConfig, pt plugin.ProjectType) vm.AppViewModel {
	prefix := "-"
	if urls, ok := app.PluginApp.URLs[pt]; ok {
		prefix = "/" + strings.TrimPrefix(urls.Regex, "^")
	}

	return vm.AppViewModel{
		Name:            app.Name,
		Label:           app.Label(),
		VerboseName:     app.VerboseName,
		Version:         app.Version,
		DescriptionHTML: RenderMarkdown(app.Description),
		URLPrefix:       prefix,
	}
}

func toSwitchViewModels(switches []model.WaffleSwitch) []vm.SwitchViewModel {
	out := make([]vm.SwitchViewModel, 0, len(switches))
	for _, s := range switches {
		out = append(out, vm.SwitchViewModel{
			Name:     s.Name,
			Active:   s.Active,
			Note:     s.Note,
			Modified: s.Modified.UTC().Format(time.RFC3339),
		})
	}
	return out
}
