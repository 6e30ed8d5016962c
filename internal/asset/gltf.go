package asset

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"

	"github.com/tomz197/vrarcade/internal/scene"
)

// Scene node names. Older exports lack names; their root nodes come in
// this order instead: pistol, robot, shot, environment.
var sceneNodeOrder = []string{"pistol", "robot", "shot", "environment"}

// GLTFLoader reads a .gltf or .glb scene from a filesystem.
type GLTFLoader struct {
	FS   fs.FS
	Path string
}

var _ SceneLoader = GLTFLoader{}

// LoadScene implements SceneLoader.
func (l GLTFLoader) LoadScene(ctx context.Context) (*Meshes, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := l.FS.Open(l.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc := new(gltf.Document)
	if err := gltf.NewDecoder(f).Decode(doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", l.Path, err)
	}
	return meshesFromDocument(doc)
}

// meshesFromDocument maps the scene's root nodes to wireframe meshes.
// Node scale resizes the built-in geometry; the environment's translation
// is baked into its mesh.
func meshesFromDocument(doc *gltf.Document) (*Meshes, error) {
	if len(doc.Scenes) == 0 {
		return nil, fmt.Errorf("scene: no scenes in document")
	}
	idx := 0
	if doc.Scene != nil {
		idx = int(*doc.Scene)
	}
	if idx >= len(doc.Scenes) {
		return nil, fmt.Errorf("scene: default scene %d out of range", idx)
	}
	roots := doc.Scenes[idx].Nodes

	byName := make(map[string]*gltf.Node, len(roots))
	for _, n := range roots {
		if int(n) >= len(doc.Nodes) {
			return nil, fmt.Errorf("scene: node index %d out of range", n)
		}
		if node := doc.Nodes[n]; node.Name != "" {
			byName[node.Name] = node
		}
	}
	find := func(pos int) (*gltf.Node, error) {
		name := sceneNodeOrder[pos]
		if node, ok := byName[name]; ok {
			return node, nil
		}
		if pos < len(roots) && int(roots[pos]) < len(doc.Nodes) && doc.Nodes[roots[pos]].Name == "" {
			return doc.Nodes[roots[pos]], nil
		}
		return nil, fmt.Errorf("scene: node %q not found", name)
	}

	pistol, err := find(0)
	if err != nil {
		return nil, err
	}
	robot, err := find(1)
	if err != nil {
		return nil, err
	}
	shot, err := find(2)
	if err != nil {
		return nil, err
	}
	env, err := find(3)
	if err != nil {
		return nil, err
	}

	room := scene.BoxMesh("environment", env.Scale[0], env.Scale[1], env.Scale[2], 10, scene.ColorRoom)
	offset := mgl64.Vec3{env.Translation[0], env.Translation[1], env.Translation[2]}
	for i := range room.Segments {
		room.Segments[i].A = room.Segments[i].A.Add(offset)
		room.Segments[i].B = room.Segments[i].B.Add(offset)
	}

	impactSize := 0.15
	if n, ok := byName["impact"]; ok {
		impactSize *= n.Scale[0]
	}

	return &Meshes{
		Weapon:      scene.PistolMesh("pistol", scene.ColorWeapon).Scaled(pistol.Scale[0]),
		Enemy:       scene.RobotMesh("robot", scene.ColorEnemy).Scaled(robot.Scale[0]),
		Hostile:     scene.ConeMesh("shot", 0.1, 0.3, 3, scene.ColorHostile).Scaled(shot.Scale[0]),
		Projectile:  scene.ConeMesh("bullet", 0.08, 0.24, 4, scene.ColorProjectile),
		Impact:      scene.BurstMesh("impact", impactSize, scene.ColorImpact),
		Environment: room,
	}, nil
}
