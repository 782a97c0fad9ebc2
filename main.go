/*
Copyright 2022.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/giantswarm/apiextensions-application/api/v1alpha1"
	"github.com/giantswarm/microerror"
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/pkg/browser"
	"go.uber.org/zap"
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/giantswarm/auth-settings/pkg/authsettings"
	"github.com/giantswarm/auth-settings/pkg/deployment"
	"github.com/giantswarm/auth-settings/pkg/server"
	"github.com/giantswarm/auth-settings/pkg/settings"
	"github.com/giantswarm/auth-settings/pkg/yaml"
	"github.com/giantswarm/auth-settings/setup"
)

const (
	printText = "text"
	printYAML = "yaml"
	printJSON = "json"
)

var (
	scheme = runtime.NewScheme()
)

func init() {
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(v1alpha1.AddToScheme(scheme))
}

type flags struct {
	configFile      string
	valuesFile      string
	dexAppName      string
	dexAppNamespace string
	address         string
	printFormat     string
	open            bool
	development     bool
}

func main() {
	var f flags
	flag.StringVar(&f.configFile, "config", "", "Path to the service config file.")
	flag.StringVar(&f.valuesFile, "values-file", "", "Path to a YAML file with deployment option values. Overrides the dex app source.")
	flag.StringVar(&f.dexAppName, "dex-app-name", "", "Name of the dex app to read connectors from. Discovered by label if empty.")
	flag.StringVar(&f.dexAppNamespace, "dex-app-namespace", "", "Namespace of the dex app to read connectors from.")
	flag.StringVar(&f.address, "address", "", "The address the settings page binds to.")
	flag.StringVar(&f.printFormat, "print", "", "Print the settings once as text, yaml or json instead of serving them.")
	flag.BoolVar(&f.open, "open", false, "Open the settings page in a browser once it is served.")
	flag.BoolVar(&f.development, "zap-devel", false, "Use development logging.")
	flag.Parse()

	zapLog, err := newZapLogger(f.development)
	if err != nil {
		fmt.Printf("failed to create logger: %s\n", err)
		os.Exit(1)
	}
	log := zapr.NewLogger(zapLog)
	ctrl.SetLogger(log)

	if err := run(ctrl.SetupSignalHandler(), f, log, os.Stdout); err != nil {
		log.Error(err, "Failed to run auth settings.")
		_ = zapLog.Sync()
		os.Exit(1)
	}
	_ = zapLog.Sync()
}

func newZapLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(ctx context.Context, f flags, log logr.Logger, out io.Writer) error {
	config, err := getConfig(f)
	if err != nil {
		return microerror.Mask(err)
	}

	source, err := newSource(config, log)
	if err != nil {
		return microerror.Mask(err)
	}

	if f.printFormat != "" {
		return printSettings(ctx, source, f.printFormat, out)
	}

	s, err := server.New(server.Config{
		Log:               log.WithName("server"),
		Source:            source,
		Address:           config.Server.Address,
		ReadHeaderTimeout: config.Server.ReadHeaderTimeout,
	})
	if err != nil {
		return microerror.Mask(err)
	}

	return s.Run(ctx, func(addr string) {
		if !f.open {
			return
		}
		if err := browser.OpenURL(fmt.Sprintf("http://%s%s", addr, server.AuthPagePath)); err != nil {
			log.Error(err, "Failed to open browser.")
		}
	})
}

func getConfig(f flags) (setup.Config, error) {
	config := setup.DefaultConfig()
	if f.configFile != "" {
		var err error
		config, err = setup.GetConfigFromFile(f.configFile)
		if err != nil {
			return config, microerror.Mask(err)
		}
	}
	if f.valuesFile != "" {
		config.Source.ValuesFile = f.valuesFile
	}
	if f.dexAppName != "" {
		config.Source.DexApp.Name = f.dexAppName
	}
	if f.dexAppNamespace != "" {
		config.Source.DexApp.Namespace = f.dexAppNamespace
	}
	if f.address != "" {
		config.Server.Address = f.address
	}
	return config, microerror.Mask(config.Validate())
}

func newSource(config setup.Config, log logr.Logger) (deployment.Source, error) {
	if !config.UsesDex() {
		log.Info(fmt.Sprintf("Reading deployment config from %s.", config.Source.ValuesFile))
		return deployment.FileSource{Path: config.Source.ValuesFile}, nil
	}

	restConfig, err := ctrl.GetConfig()
	if err != nil {
		return nil, microerror.Mask(err)
	}
	c, err := client.New(restConfig, client.Options{Scheme: scheme})
	if err != nil {
		return nil, microerror.Mask(err)
	}
	log.Info(fmt.Sprintf("Reading deployment config from dex app in namespace %s.", config.Source.DexApp.Namespace))
	return deployment.NewDexSource(deployment.DexSourceConfig{
		Client:       c,
		Log:          log.WithName("dex"),
		AppName:      config.Source.DexApp.Name,
		AppNamespace: config.Source.DexApp.Namespace,
	})
}

func printSettings(ctx context.Context, source deployment.Source, format string, out io.Writer) error {
	config, err := source.DeploymentConfig(ctx)
	if err != nil {
		return microerror.Mask(err)
	}
	config = config.Redacted()

	switch format {
	case printText:
		return settings.RenderText(out, authsettings.Page(config))
	case printYAML:
		data, err := yaml.MarshalWithJsonAnnotations(config)
		if err != nil {
			return microerror.Mask(err)
		}
		_, err = out.Write(data)
		return microerror.Mask(err)
	case printJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return microerror.Mask(enc.Encode(config))
	}
	return microerror.Maskf(invalidFlagError, "print format %q is not one of %s, %s, %s", format, printText, printYAML, printJSON)
}
