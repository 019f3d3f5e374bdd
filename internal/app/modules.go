package app

import (
	"github.com/skyops/flowgrid/internal/registry"
	"github.com/skyops/flowgrid/modules/aggregator"
	"github.com/skyops/flowgrid/modules/ai_prompt"
	"github.com/skyops/flowgrid/modules/database"
	"github.com/skyops/flowgrid/modules/email"
	"github.com/skyops/flowgrid/modules/file_op"
	"github.com/skyops/flowgrid/modules/filter"
	"github.com/skyops/flowgrid/modules/http_request"
	"github.com/skyops/flowgrid/modules/schedule"
	"github.com/skyops/flowgrid/modules/shell"
	"github.com/skyops/flowgrid/modules/trade_agent"
	"github.com/skyops/flowgrid/modules/transform"
	"github.com/skyops/flowgrid/modules/webhook"
)

// coreModules is the definitive list of node handler modules compiled into
// the flowgrid binary, one per type tag in the catalogue.
var coreModules = []registry.Module{
	&shell.Module{},
	&ai_prompt.Module{},
	&database.Module{},
	&trade_agent.Module{},
	&aggregator.Module{},
	&transform.Module{},
	&filter.Module{},
	&http_request.Module{},
	&email.Module{},
	&schedule.Module{},
	&file_op.Module{},
	&webhook.Module{},
}
