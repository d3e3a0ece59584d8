package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/madar/internal/ports/primary"
)

var plantCmd = &cobra.Command{
	Use:   "plant",
	Short: "Manage plants",
	Long:  "Create, list, and manage plants and their equipment",
}

// plantRequest reads the shared plant flags.
func plantRequest(cmd *cobra.Command) primary.SavePlantRequest {
	var req primary.SavePlantRequest
	req.Location, _ = cmd.Flags().GetString("location")
	req.Type, _ = cmd.Flags().GetString("type")
	req.Status, _ = cmd.Flags().GetString("status")
	req.Capacity, _ = cmd.Flags().GetInt("capacity")
	req.AreaOwnerID, _ = cmd.Flags().GetString("area-owner")
	req.ManagementID, _ = cmd.Flags().GetString("management")
	return req
}

func addPlantFlags(cmd *cobra.Command) {
	cmd.Flags().String("location", "", "Plant location")
	cmd.Flags().String("type", "", "Plant type (e.g. Refinery)")
	cmd.Flags().String("status", "", "Active, Inactive, Under_Maintenance, Decommissioned")
	cmd.Flags().Int("capacity", 0, "Capacity")
	cmd.Flags().String("area-owner", "", "Area owner profile (AO-xxx)")
	cmd.Flags().String("management", "", "Managing profile (MGMT-xxx); defaults to you")
}

var plantCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Register a plant",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		req := plantRequest(cmd)
		req.Name = args[0]
		return svc.PlantAdapter(nil).Create(NewContext(), req)
	}),
}

var plantListCmd = &cobra.Command{
	Use:   "list",
	Short: "List plants, one page at a time",
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		status, _ := cmd.Flags().GetString("status")
		page, _ := cmd.Flags().GetInt("page")
		return svc.PlantAdapter(nil).List(NewContext(), primary.PlantFilters{Status: status, Page: page})
	}),
}

var plantShowCmd = &cobra.Command{
	Use:   "show [plant-id]",
	Short: "Show plant details and equipment",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		return svc.PlantAdapter(nil).Show(NewContext(), args[0])
	}),
}

var plantUpdateCmd = &cobra.Command{
	Use:   "update [plant-id]",
	Short: "Update a plant",
	Long: `Update a plant. Unset flags keep their stored value.

Management may change any field. The plant's area owner may change its name,
location, type, status and capacity but not its owner or manager.`,
	Args: cobra.ExactArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		req := plantRequest(cmd)
		req.Name, _ = cmd.Flags().GetString("name")
		return svc.PlantAdapter(nil).Update(NewContext(), args[0], req)
	}),
}

var plantDeleteCmd = &cobra.Command{
	Use:   "delete [plant-id]",
	Short: "Delete a plant with no equipment and no schedules",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		return svc.PlantAdapter(nil).Delete(NewContext(), args[0])
	}),
}

func init() {
	addPlantFlags(plantCreateCmd)
	addPlantFlags(plantUpdateCmd)
	plantUpdateCmd.Flags().String("name", "", "New name")

	plantListCmd.Flags().String("status", "", "Filter by status")
	plantListCmd.Flags().Int("page", 1, "Page number")

	plantCmd.AddCommand(plantCreateCmd)
	plantCmd.AddCommand(plantListCmd)
	plantCmd.AddCommand(plantShowCmd)
	plantCmd.AddCommand(plantUpdateCmd)
	plantCmd.AddCommand(plantDeleteCmd)
}

// PlantCmd returns the plant command
func PlantCmd() *cobra.Command {
	return plantCmd
}

var equipmentCmd = &cobra.Command{
	Use:     "equipment",
	Aliases: []string{"equip"},
	Short:   "Manage plant equipment",
}

func equipmentRequest(cmd *cobra.Command) primary.SaveEquipmentRequest {
	var req primary.SaveEquipmentRequest
	req.Name, _ = cmd.Flags().GetString("name")
	req.Type, _ = cmd.Flags().GetString("type")
	req.Model, _ = cmd.Flags().GetString("model")
	req.Status, _ = cmd.Flags().GetString("status")
	req.Location, _ = cmd.Flags().GetString("location")
	req.Capacity, _ = cmd.Flags().GetInt("capacity")
	req.MaintenanceCycle, _ = cmd.Flags().GetInt("maintenance-cycle")
	return req
}

func addEquipmentFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Equipment name")
	cmd.Flags().String("type", "", "Equipment type")
	cmd.Flags().String("model", "", "Model")
	cmd.Flags().String("status", "", "Operational, Under_Maintenance, Out_Of_Service, Decommissioned")
	cmd.Flags().String("location", "", "Location within the plant")
	cmd.Flags().Int("capacity", 0, "Capacity")
	cmd.Flags().Int("maintenance-cycle", 0, "Maintenance cycle in days")
}

var equipmentAddCmd = &cobra.Command{
	Use:   "add [plant-id]",
	Short: "Add equipment to a plant",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		req := equipmentRequest(cmd)
		req.PlantID = args[0]
		return svc.PlantAdapter(nil).AddEquipment(NewContext(), req)
	}),
}

var equipmentListCmd = &cobra.Command{
	Use:   "list [plant-id]",
	Short: "List a plant's equipment",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		page, _ := cmd.Flags().GetInt("page")
		return svc.PlantAdapter(nil).ListEquipment(NewContext(), args[0], page)
	}),
}

var equipmentUpdateCmd = &cobra.Command{
	Use:   "update [equipment-id]",
	Short: "Update equipment",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		return svc.PlantAdapter(nil).UpdateEquipment(NewContext(), args[0], equipmentRequest(cmd))
	}),
}

var equipmentDeleteCmd = &cobra.Command{
	Use:   "delete [equipment-id]",
	Short: "Remove equipment",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		return svc.PlantAdapter(nil).DeleteEquipment(NewContext(), args[0])
	}),
}

func init() {
	addEquipmentFlags(equipmentAddCmd)
	addEquipmentFlags(equipmentUpdateCmd)
	equipmentListCmd.Flags().Int("page", 1, "Page number")

	equipmentCmd.AddCommand(equipmentAddCmd)
	equipmentCmd.AddCommand(equipmentListCmd)
	equipmentCmd.AddCommand(equipmentUpdateCmd)
	equipmentCmd.AddCommand(equipmentDeleteCmd)
}

// EquipmentCmd returns the equipment command
func EquipmentCmd() *cobra.Command {
	return equipmentCmd
}
