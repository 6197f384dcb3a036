package driver

const (
	SaveEntityNodeQuery = `
		MERGE (n:Entity {id: $id, graph_id: $graph_id})
		SET n.text = $text,
			n.type = $type,
			n.category = $category,
			n.confidence = $confidence,
			n.role = $role
		RETURN n.id AS id
	`

	SaveRelationshipEdgeQuery = `
		MATCH (source:Entity {id: $source_id, graph_id: $graph_id})
		MATCH (target:Entity {id: $target_id, graph_id: $graph_id})
		MERGE (source)-[e:RELATES_TO {id: $id}]->(target)
		SET e.relation = $relation,
			e.confidence = $confidence
		RETURN e.id AS id
	`

	SaveComparisonNodeQuery = `
		MERGE (c:Comparison {id: $id})
		SET c.generated_at = $generated_at,
			c.overall_similarity = $overall_similarity,
			c.compliance_score = $compliance_score,
			c.compliance_level = $compliance_level,
			c.is_compliant = $is_compliant,
			c.entity_matches = $entity_matches,
			c.relationship_matches = $relationship_matches
		RETURN c.id AS id
	`

	LinkComparisonGraphQuery = `
		MATCH (c:Comparison {id: $comparison_id})
		MATCH (n:Entity {graph_id: $graph_id})
		MERGE (c)-[e:COVERS {role: $role}]->(n)
		RETURN c.id AS id
	`

	GetGraphEntitiesQuery = `
		MATCH (n:Entity {graph_id: $graph_id})
		RETURN n.id AS id, n.text AS text, n.type AS type, n.category AS category, n.confidence AS confidence
	`

	GetGraphRelationshipsQuery = `
		MATCH (n:Entity {graph_id: $graph_id})-[e:RELATES_TO]->(m:Entity {graph_id: $graph_id})
		RETURN e.id AS id, n.id AS source_id, m.id AS target_id, e.relation AS relation, e.confidence AS confidence
	`

	DeleteGraphQuery = `
		MATCH (n:Entity {graph_id: $graph_id})
		DETACH DELETE n
	`
)
