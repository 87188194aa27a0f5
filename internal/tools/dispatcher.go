package tools

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"bank-assistant/internal/i18n"
	"bank-assistant/internal/services"
	"bank-assistant/internal/toolcall"
	"bank-assistant/internal/utils"
)

// UnknownToolError: имени нет в реестре.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %q", e.Name)
}

var ErrToolPanic = errors.New("tool panicked")

type Dispatcher struct {
	registry *Registry
}

func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Invoke выполняет вызов от имени caller.
// customer_id всегда берётся из аутентификации, lang подставляется, если модель его не указала.
// Оба значения доходят до инструмента, только если они есть в его allow-list.
func (d *Dispatcher) Invoke(ctx context.Context, call toolcall.Call, caller services.Caller) (result string, err error) {
	tool, ok := d.registry.Lookup(call.Name)
	if !ok {
		return "", &UnknownToolError{Name: call.Name}
	}

	args := make(map[string]any, len(call.Args)+2)
	for k, v := range call.Args {
		args[k] = v
	}
	if overridesCaller(Args(call.Args), caller.CustomerID) {
		utils.LogWarning("Dispatcher", "%s: модель передала customer_id=%v, используется %d", call.Name, call.Args[ArgCustomerID], caller.CustomerID)
	}
	args[ArgCustomerID] = caller.CustomerID
	if v, ok := args[ArgLang]; !ok || v == nil {
		args[ArgLang] = string(caller.Lang)
	}

	kept, dropped := d.registry.FilterArgs(call.Name, args)
	if len(dropped) > 0 {
		utils.LogDebug("Dispatcher", "%s: отброшены аргументы вне allow-list: %v", call.Name, dropped)
	}
	for _, k := range dropped {
		if _, fromModel := call.Args[k]; fromModel && k != ArgCustomerID {
			utils.LogWarning("Dispatcher", "%s: аргумент %q не разрешён и отброшен", call.Name, k)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			utils.LogError("Dispatcher", fmt.Sprintf("%s: паника в инструменте: %v\n%s", call.Name, r, debug.Stack()), nil)
			err = fmt.Errorf("%w: %v", ErrToolPanic, r)
		}
	}()

	utils.LogCall(call.Name, caller.CustomerID, kept)
	return tool.Call(ctx, kept)
}

// overridesCaller сообщает, что модель передала customer_id, отличный от аутентифицированного.
// "7", 7 и 7.0 считаются одним и тем же id.
func overridesCaller(args Args, customerID int64) bool {
	if !args.has(ArgCustomerID) {
		return false
	}
	id, err := args.Int(ArgCustomerID, 0)
	return err != nil || id != customerID
}

// Dispatch как Invoke, но любая ошибка превращается в текст с исходным вызовом и причиной.
func (d *Dispatcher) Dispatch(ctx context.Context, call toolcall.Call, caller services.Caller) string {
	result, err := d.Invoke(ctx, call, caller)
	if err == nil {
		return result
	}

	raw := call.Raw
	if raw == "" {
		raw = "name=" + call.Name
	}

	var unknown *UnknownToolError
	var argErr *ArgError
	switch {
	case errors.As(err, &unknown), errors.As(err, &argErr):
		utils.LogWarning("Dispatcher", "Вызов %q отклонён: %v", raw, err)
		return services.CallFailed(caller.Lang, raw, err)
	default:
		// детали ошибок хранилища клиенту не показываются
		utils.LogError("Dispatcher", fmt.Sprintf("Вызов %q завершился ошибкой", raw), err)
		return services.CallFailed(caller.Lang, raw, errors.New(i18n.T(caller.Lang, "service_unavailable", nil)))
	}
}
