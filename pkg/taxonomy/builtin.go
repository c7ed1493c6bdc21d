package taxonomy

// Built-in exception type ids
const (
	Exception = "exception"

	ValueException   = "value_exception"
	UnknownItem      = "unknown_item"
	UnknownBlock     = "unknown_block"
	UnknownBiome     = "unknown_biome"
	UnknownSound     = "unknown_sound"
	UnknownParticle  = "unknown_particle"
	UnknownPOI       = "unknown_poi"
	UnknownDimension = "unknown_dimension"
	UnknownStructure = "unknown_structure"
	UnknownCriterion = "unknown_criterion"

	IOException   = "io_exception"
	NBTReadError  = "nbt_read_error"
	JSONReadError = "json_read_error"

	// UserException is the attachment point for script-declared types
	UserException = "user_exception"
)

// Declaration is an id with its parent id. Parent is empty for the root.
type Declaration struct {
	ID     string
	Parent string
}

// builtins lists the backbone in registration order, parents first
var builtins = []Declaration{
	{ID: Exception},
	{ID: ValueException, Parent: Exception},
	{ID: UnknownItem, Parent: ValueException},
	{ID: UnknownBlock, Parent: ValueException},
	{ID: UnknownBiome, Parent: ValueException},
	{ID: UnknownSound, Parent: ValueException},
	{ID: UnknownParticle, Parent: ValueException},
	{ID: UnknownPOI, Parent: ValueException},
	{ID: UnknownDimension, Parent: ValueException},
	{ID: UnknownStructure, Parent: ValueException},
	{ID: UnknownCriterion, Parent: ValueException},
	{ID: IOException, Parent: Exception},
	{ID: NBTReadError, Parent: IOException},
	{ID: JSONReadError, Parent: IOException},
	{ID: UserException, Parent: Exception},
}

// Builtins returns a copy of the backbone in registration order
func Builtins() []Declaration {
	return append([]Declaration(nil), builtins...)
}

// Bootstrap registers the built-in backbone into an empty registry
func Bootstrap(r *Registry) error {
	for _, d := range builtins {
		if _, err := r.Register(d.ID, d.Parent); err != nil {
			return err
		}
	}
	r.logger.Info("Exception taxonomy bootstrapped", "types", len(builtins))
	return nil
}
