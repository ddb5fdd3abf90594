package bootstrap

import (
	"context"
	"fmt"

	"github.com/LerianStudio/mdispatch/common/mlog"
	"github.com/LerianStudio/mdispatch/pkg/mdispatch"
	"github.com/LerianStudio/mdispatch/pkg/mfacet"
	"github.com/LerianStudio/mdispatch/pkg/msubsystem"
	"github.com/LerianStudio/mdispatch/pkg/msystem"
)

// BuildMessageSystem wires the demo gateway's single child Subsystem
// ("gateway"), attaching router, queue, processor and listeners
// facets, and registering an echo route used by the bootstrap tests.
func BuildMessageSystem(ctx context.Context, cfg *Config, logger mlog.Logger) (*msystem.MessageSystem, *msubsystem.Subsystem, error) {
	ms, err := msystem.New(ApplicationName, logger)
	if err != nil {
		return nil, nil, err
	}

	gateway, err := msubsystem.New("gateway", logger)
	if err != nil {
		return nil, nil, err
	}

	gateway.Use(mfacet.Hook{
		Kind:    "router",
		Source:  "dispatchd/bootstrap",
		Factory: mdispatch.NewRouterFacet("dispatchd/bootstrap"),
	})

	gateway.Use(mfacet.Hook{
		Kind:    "queue",
		Source:  "dispatchd/bootstrap",
		Factory: mdispatch.NewQueueFacet("dispatchd/bootstrap", cfg.QueueCapacity),
	})

	gateway.Use(mfacet.Hook{
		Kind:    "listeners",
		Source:  "dispatchd/bootstrap",
		Factory: mdispatch.NewListenersFacet("dispatchd/bootstrap"),
	})

	gateway.Use(mfacet.Hook{
		Kind:    "processor",
		Attach:  []string{"router", "queue", "listeners"},
		Source:  "dispatchd/bootstrap",
		Factory: mdispatch.NewProcessorFacet("dispatchd/bootstrap"),
	})

	gateway.OnInit(func(api *mfacet.FacetManager, _ map[string]any) error {
		router, _ := api.Find("router")
		routerFacet, ok := router.(*mdispatch.RouterFacet)
		if !ok {
			return nil
		}

		return routerFacet.RegisterRoute("echo", echoHandler, mdispatch.RouteOptions{})
	})

	if err := ms.RegisterSubsystem(ctx, gateway); err != nil {
		return nil, nil, err
	}

	if proc, ok := gateway.CoreProcessor().(*mdispatch.ProcessorFacet); ok {
		proc.SetSendError(ms.SendError)
	}

	return ms, gateway, nil
}

func echoHandler(message *mdispatch.Message, params map[string]string, options map[string]any) (mdispatch.Result, error) {
	return mdispatch.Result{
		Success: true,
		Data:    fmt.Sprintf("echo:%v", message.Body),
	}, nil
}
